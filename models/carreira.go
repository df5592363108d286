package models

// Carreira representa uma trilha de atuação em tecnologia (Data/ML, Back-end, etc).
// O catálogo é populado uma única vez no startup e tratado como somente-leitura
// pelos controllers.
type Carreira struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nome      string `gorm:"not null" json:"nome" form:"nome"`
	Descricao string `gorm:"type:text" json:"descricao" form:"descricao"`
}

func (Carreira) TableName() string {
	return "carreira"
}
