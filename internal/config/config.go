package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	AllowedOrigins []string
	LogFile        string
}

func Load() AppConfig {
	_ = godotenv.Load() // load .env if present

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-in-production" // Default for development
	}
	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return AppConfig{
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      secret,
		AllowedOrigins: origins,
		LogFile:        os.Getenv("LOG_FILE"),
	}
}
