package models

// TrilhaItem liga uma trilha a um curso com uma posição (ordem).
// A ordem é um inteiro positivo, não necessariamente contíguo: quem consome
// a trilha deve reordenar por ela em vez de confiar na ordem de inserção.
type TrilhaItem struct {
	ID       int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	TrilhaID int64 `gorm:"not null;index" json:"trilha_id"`
	CursoID  int64 `gorm:"not null;index" json:"curso_id"`
	Ordem    int   `gorm:"not null" json:"ordem"`
}

func (TrilhaItem) TableName() string {
	return "trilha_item"
}
