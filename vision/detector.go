package vision

import "context"

// Detection é um objeto localizado em uma imagem: label, confiança em [0,1]
// e bounding box em pixels (x, y, largura, altura; origem no canto superior
// esquerdo).
type Detection struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

// Detector é o detector de objetos visto como caixa-preta: recebe os bytes da
// imagem e um limiar mínimo de confiança, devolve os objetos encontrados.
type Detector interface {
	Predict(ctx context.Context, image []byte, minConfidence float64) ([]Detection, error)
}
