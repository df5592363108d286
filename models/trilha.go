package models

import "time"

// Trilha é um plano de estudos gerado: pertence a um usuário e a uma carreira
// e é composta por itens ordenados (TrilhaItem). Depois de criada só muda
// ganhando novos itens.
type Trilha struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID  int64      `gorm:"not null;index" json:"usuario_id"`
	CarreiraID int64      `gorm:"not null;index" json:"carreira_id"`
	ScoreTotal *float64   `json:"score_total"`
	CreatedAt  *time.Time `json:"criado_em"`
}

func (Trilha) TableName() string {
	return "trilha"
}
