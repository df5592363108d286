package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	gcpvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const annotateTimeout = 60 * time.Second

// GCPDetector implementa Detector em cima do object localization do Cloud
// Vision. É construído uma única vez no startup e injetado nos controllers;
// o ciclo de vida acompanha o processo.
type GCPDetector struct {
	client *gcpvision.ImageAnnotatorClient
	logger *zap.Logger
}

// NewGCPDetector cria o cliente do Cloud Vision. Credenciais vêm de
// GOOGLE_APPLICATION_CREDENTIALS quando setada, senão do Application Default
// Credentials do ambiente.
func NewGCPDetector(ctx context.Context, logger *zap.Logger) (*GCPDetector, error) {
	var opts []option.ClientOption
	if creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := gcpvision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &GCPDetector{client: client, logger: logger}, nil
}

func (d *GCPDetector) Close() error {
	if d == nil || d.client == nil {
		return nil
	}
	return d.client.Close()
}

// Predict roda a localização de objetos e converte as bounding boxes
// normalizadas para pixels. Detecções abaixo de minConfidence são filtradas
// aqui, já que a API não aceita limiar.
func (d *GCPDetector) Predict(ctx context.Context, img []byte, minConfidence float64) ([]Detection, error) {
	if len(img) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, annotateTimeout)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{{
				Type:       visionpb.Feature_OBJECT_LOCALIZATION,
				MaxResults: 50,
			}},
		}},
	}

	resp, err := d.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("annotate image: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if apiErr := resp.Responses[0].Error; apiErr != nil {
		return nil, fmt.Errorf("annotate image: %s", apiErr.Message)
	}

	width, height := imageSize(img)
	if width <= 0 || height <= 0 {
		// formato não reconhecido: devolve as coordenadas normalizadas mesmo
		d.logger.Warn("não foi possível decodificar as dimensões da imagem")
		width, height = 1, 1
	}

	var out []Detection
	for _, ann := range resp.Responses[0].LocalizedObjectAnnotations {
		if ann == nil {
			continue
		}
		conf := float64(ann.Score)
		if conf < minConfidence {
			continue
		}
		x, y, w, h := pixelBox(ann.BoundingPoly, float64(width), float64(height))
		out = append(out, Detection{
			Label:      strings.ToLower(strings.TrimSpace(ann.Name)),
			Confidence: conf,
			BBox:       []float64{x, y, w, h},
		})
	}

	return out, nil
}

func imageSize(img []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// pixelBox reduz o polígono normalizado a um retângulo x/y/w/h em pixels.
func pixelBox(poly *visionpb.BoundingPoly, width, height float64) (x, y, w, h float64) {
	if poly == nil || len(poly.NormalizedVertices) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY := 1.0, 1.0
	maxX, maxY := 0.0, 0.0
	for _, v := range poly.NormalizedVertices {
		if v == nil {
			continue
		}
		fx, fy := float64(v.X), float64(v.Y)
		if fx < minX {
			minX = fx
		}
		if fy < minY {
			minY = fy
		}
		if fx > maxX {
			maxX = fx
		}
		if fy > maxY {
			maxY = fy
		}
	}

	x = minX * width
	y = minY * height
	w = (maxX - minX) * width
	h = (maxY - minY) * height
	return x, y, w, h
}
