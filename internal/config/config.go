package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const defaultTokenTTL = 24 * time.Hour

type Config struct {
	DATABASE_URL  string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	DB_SSLMODE    string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	ES_INDEX      string
	KAFKA_ADDRESS string
	JWT_SECRET    string
	TOKEN_TTL     time.Duration
	UPLOAD_DIR    string
	SERVER_PORT   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DATABASE_URL:  os.Getenv("DATABASE_URL"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		DB_SSLMODE:    getDefault("DB_SSLMODE", "disable"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		ES_INDEX:      getDefault("ES_INDEX", "books"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		TOKEN_TTL:     parseTTL(os.Getenv("TOKEN_TTL")),
		UPLOAD_DIR:    getDefault("UPLOAD_DIR", "uploads"),
		SERVER_PORT:   getDefault("SERVER_PORT", "8080"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseTTL(raw string) time.Duration {
	if raw == "" {
		return defaultTokenTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		log.Printf("Notice: invalid TOKEN_TTL %q, using %s", raw, defaultTokenTTL)
		return defaultTokenTTL
	}
	return ttl
}
