package models

// Usuario representa a pessoa dona das trilhas geradas.
// É criado de forma preguiçosa na primeira geração de trilha com aquele nome
// (com um e-mail sintético), e nunca atualizado depois por esse fluxo.
type Usuario struct {
	ID    int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Nome  string `gorm:"not null;index" json:"nome" form:"nome"`
	Email string `gorm:"unique" json:"email" form:"email"`
}

func (Usuario) TableName() string {
	return "usuario"
}
