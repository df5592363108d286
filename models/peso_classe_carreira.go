package models

// PesoClasseCarreira liga uma classe de objeto detectado a uma carreira com um
// peso em [0,1]. A tabela é populada no startup a partir do mapa fixo do
// pacote vision; o scorer em si lê o mapa em memória.
type PesoClasseCarreira struct {
	ID         int64   `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Label      string  `gorm:"not null;index" json:"label" form:"label"`
	CarreiraID int64   `gorm:"not null;index" json:"carreira_id"`
	Peso       float64 `gorm:"not null" json:"peso" form:"peso"`
}

func (PesoClasseCarreira) TableName() string {
	return "peso_classe_carreira"
}
