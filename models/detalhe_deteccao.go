package models

// DetalheDeteccao é um objeto detectado dentro de uma Deteccao: label,
// confiança e bounding box em pixels (origem no canto superior esquerdo).
// Imutável depois de gravado.
type DetalheDeteccao struct {
	ID         int64   `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	DeteccaoID int64   `gorm:"not null;index" json:"deteccao_id"`
	Label      string  `gorm:"not null" json:"label"`
	Confidence float64 `gorm:"not null" json:"confidence"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
}

func (DetalheDeteccao) TableName() string {
	return "detalhe_deteccao"
}
