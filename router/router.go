package router

import (
	"careermap/controllers"
	"careermap/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Initialize amarra rotas e middlewares.
func Initialize(r *gin.Engine, log *zap.Logger) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Análise de imagem
	api.POST("/analisar-imagem", Logger(log), controllers.AnalisarImagem)
	api.GET("/deteccoes/:id", Logger(log), controllers.DetalharDeteccao)

	// Trilhas
	api.POST("/gerar-trilha", Logger(log), controllers.GerarTrilha)
	api.GET("/trilhas/:usuario_nome", Logger(log), controllers.ListarTrilhas)
	api.GET("/carreiras", Logger(log), controllers.ListarCarreiras)

	log.Info("rotas inicializadas")
}
