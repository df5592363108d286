package controllers

import (
	"careermap/planner"
	"careermap/vision"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependências construídas no main e injetadas uma vez antes do servidor
// subir. O detector pode ficar nil quando o Cloud Vision não está configurado;
// nesse caso a análise de imagem responde erro de servidor.
var (
	trilhaPlanner *planner.Planner
	detector      vision.Detector
	logger        = zap.NewNop()
	minConfidence = 0.35
)

func SetDependencies(p *planner.Planner, d vision.Detector, log *zap.Logger, minConf float64) {
	trilhaPlanner = p
	detector = d
	if log != nil {
		logger = log
	}
	if minConf > 0 {
		minConfidence = minConf
	}
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
