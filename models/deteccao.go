package models

import "time"

// Deteccao agrupa os objetos encontrados em uma imagem analisada.
type Deteccao struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64      `gorm:"index" json:"usuario_id"`
	CreatedAt *time.Time `json:"criado_em"`
}

func (Deteccao) TableName() string {
	return "deteccao"
}
