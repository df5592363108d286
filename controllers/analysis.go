package controllers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	dbpkg "careermap/db"
	"careermap/models"
	"careermap/vision"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DetectOut struct {
	Detections   []vision.Detection `json:"detections"`
	CareerScores map[string]float64 `json:"career_scores"`
	LatencyMS    int64              `json:"latency_ms"`
	DeteccaoID   *int64             `json:"deteccao_id"`
}

// POST /api/analisar-imagem
//
// Aceita a imagem como upload multipart (campo "file") ou como form field
// "image_base64" (com ou sem prefixo data-URL). Sem imagem nenhuma a resposta
// é vazia e válida, nada é persistido.
//
// career_scores volta sempre vazio por enquanto: o scorer existe mas ainda
// não foi ligado a este fluxo.
func AnalisarImagem(c *gin.Context) {
	t0 := time.Now()

	minc := minConfidence
	if v := strings.TrimSpace(c.PostForm("min_confidence")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			minc = f
		}
	}

	usuarioID := int64(1)
	if v := strings.TrimSpace(c.PostForm("usuario_id")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			usuarioID = id
		}
	}

	img, err := readImage(c)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(img) == 0 {
		RespondSuccess(c, DetectOut{
			Detections:   []vision.Detection{},
			CareerScores: map[string]float64{},
			LatencyMS:    0,
		})
		return
	}

	if detector == nil {
		RespondError(c, "detector de objetos não configurado", http.StatusInternalServerError)
		return
	}

	detections, err := detector.Predict(c.Request.Context(), img, minc)
	if err != nil {
		logger.Error("falha na detecção de objetos", zap.Error(err))
		RespondError(c, "falha na detecção de objetos", http.StatusInternalServerError)
		return
	}
	if detections == nil {
		detections = []vision.Detection{}
	}

	database := dbpkg.DBInstance(c)
	if database == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := database.Begin()
	if tx.Error != nil {
		RespondError(c, tx.Error.Error(), http.StatusInternalServerError)
		return
	}

	deteccao := models.Deteccao{UsuarioID: usuarioID}
	if err := tx.Create(&deteccao).Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, d := range detections {
		detalhe := models.DetalheDeteccao{
			DeteccaoID: deteccao.ID,
			Label:      d.Label,
			Confidence: d.Confidence,
		}
		if len(d.BBox) == 4 {
			detalhe.X, detalhe.Y, detalhe.W, detalhe.H = d.BBox[0], d.BBox[1], d.BBox[2], d.BBox[3]
		}
		if err := tx.Create(&detalhe).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	latency := time.Since(t0).Milliseconds()

	logger.Info("imagem analisada",
		zap.Int64("deteccao_id", deteccao.ID),
		zap.Int("objetos", len(detections)),
		zap.Int64("latency_ms", latency),
	)

	RespondSuccess(c, DetectOut{
		Detections:   detections,
		CareerScores: map[string]float64{},
		LatencyMS:    latency,
		DeteccaoID:   &deteccao.ID,
	})
}

// readImage devolve os bytes da imagem enviada, ou nil quando a request não
// trouxe imagem nenhuma (caso válido).
func readImage(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	payload := strings.TrimSpace(c.PostForm("image_base64"))
	if payload == "" {
		return nil, nil
	}

	// data URL ("data:image/png;base64,....") ou base64 puro
	if idx := strings.LastIndex(payload, ","); idx != -1 {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

// GET /api/deteccoes/:id
func DetalharDeteccao(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	database := dbpkg.DBInstance(c)
	if database == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var deteccao models.Deteccao
	if err := database.First(&deteccao, id).Error; err != nil {
		RespondError(c, "detecção não encontrada", http.StatusNotFound)
		return
	}

	var detalhes []models.DetalheDeteccao
	if err := database.Where("deteccao_id = ?", deteccao.ID).Find(&detalhes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"deteccao": deteccao, "detalhes": detalhes})
}
