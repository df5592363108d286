package main

import (
	"context"
	"log"

	"careermap/config"
	"careermap/controllers"
	"careermap/db"
	"careermap/logger"
	"careermap/planner"
	"careermap/router"
	"careermap/vision"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	conf := config.Get()

	zlog, err := logger.New(conf.LogJSON, conf.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	database, err := db.Connect(conf)
	if err != nil {
		zlog.Fatal("conexão com o banco falhou", zap.Error(err))
	}
	defer database.Close()

	if err := db.Seed(database); err != nil {
		zlog.Fatal("seed inicial falhou", zap.Error(err))
	}

	ctx := context.Background()

	// Gerador Gemini: sem chave o planner opera em modo degradado (fallback).
	trilhaPlanner := planner.New(nil, zlog)
	if conf.GeminiApiKey != "" {
		gen, err := planner.NewGenerator(ctx, conf.GeminiApiKey, conf.GeminiModel)
		if err != nil {
			zlog.Warn("cliente Gemini indisponível, usando fallback", zap.Error(err))
		} else {
			trilhaPlanner = planner.New(gen, zlog)
			zlog.Info("gerador Gemini configurado", zap.String("model", gen.Model()))
		}
	} else {
		zlog.Warn("GEMINI_API_KEY não configurada, trilhas usarão o plano fallback")
	}

	// Detector construído aqui e injetado: o ciclo de vida acompanha o
	// processo, sem singleton preguiçoso.
	var detector vision.Detector
	gcp, err := vision.NewGCPDetector(ctx, zlog)
	if err != nil {
		zlog.Warn("detector de objetos indisponível", zap.Error(err))
	} else {
		detector = gcp
		defer gcp.Close()
	}

	controllers.SetDependencies(trilhaPlanner, detector, zlog, conf.MinConfidence)

	if !conf.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, zlog)

	zlog.Info("careermap escutando", zap.String("port", conf.ApiPort))
	if err := r.Run(":" + conf.ApiPort); err != nil {
		zlog.Fatal("servidor encerrou com erro", zap.Error(err))
	}
}
