package models

// Curso é uma unidade de estudo. Hoje cada passo de trilha gera um curso
// próprio (provedor "IA"), mas nada impede um curso ser referenciado por
// vários trilha_item no futuro.
type Curso struct {
	ID           int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Titulo       string `gorm:"not null" json:"titulo" form:"titulo"`
	Provedor     string `gorm:"default:''" json:"provedor" form:"provedor"`
	CargaHoraria int    `gorm:"default:0" json:"carga_horaria" form:"carga_horaria"`
}

func (Curso) TableName() string {
	return "curso"
}
