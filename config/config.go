package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Configuration struct {
	ApiPort string

	Database string // "sqlite3" ou "postgres"
	DbHost   string
	DbPort   string
	DbUser   string
	DbName   string
	DbPass   string
	DbPath   string // arquivo do sqlite

	// Análise de imagem
	MinConfidence float64

	// Gemini. Chave vazia significa modo degradado: o gerador de trilhas
	// responde sempre com o plano fallback.
	GeminiApiKey string
	GeminiModel  string

	LogJSON bool
	Debug   bool
}

// Get carrega a configuração do ambiente. Um arquivo .env é lido se existir,
// mas não é obrigatório (em produção as variáveis vêm do próprio ambiente).
func Get() Configuration {
	_ = godotenv.Load()

	var c Configuration

	c.ApiPort = getenv("PORT", "8080")

	c.Database = getenv("DATABASE", "sqlite3")
	c.DbHost = getenv("DB_HOST", "localhost")
	c.DbPort = getenv("DB_PORT", "5432")
	c.DbUser = os.Getenv("DB_USER")
	c.DbName = getenv("DB_NAME", "careermap")
	c.DbPass = os.Getenv("DB_PASS")
	c.DbPath = getenv("DB_PATH", "db/careermap.db")

	c.MinConfidence = getenvFloat("MIN_CONFIDENCE", 0.35)

	c.GeminiApiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	c.GeminiModel = getenv("GEMINI_MODEL", "gemini-2.5-flash")

	c.LogJSON = getenvBool("LOG_JSON", false)
	c.Debug = getenvBool("DEBUG", false)

	return c
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
