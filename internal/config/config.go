package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects process settings from the environment. A local .env file is
// loaded first if present, without overriding variables already set.
type Config struct {
	DataDir      string   // directory for per-user record and log files
	Store        string   // "file", "postgres" or "memory"
	PostgresDSN  string   // used when Store is "postgres"
	KafkaBrokers []string // empty means no event publishing
	LogLevel     string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		DataDir:     getenv("BANK_DATA_DIR", "users"),
		Store:       getenv("BANK_STORE", "file"),
		PostgresDSN: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("BANK_LOG_LEVEL", "error"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
