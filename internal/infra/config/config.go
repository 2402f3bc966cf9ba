package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	EmbedderURL     string
	EmbeddingModel  string
	EmbedderTimeout int

	ChatURL     string
	ChatAPIKey  string
	ChatModel   string
	ChatTimeout int
	ChatRPS     float64

	OTelEnabled bool
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "notes-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "notes_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "notes_password"),
		DBName:     getEnv("DB_NAME", "notes_db"),

		EmbedderURL:     getEnv("EMBEDDER_URL", "http://embedder:11434"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "all-minilm"),
		EmbedderTimeout: getEnvInt("EMBEDDER_TIMEOUT_SECONDS", 30),

		ChatURL:     getEnv("CHAT_URL", "https://api.groq.com/openai/v1"),
		ChatAPIKey:  getSecret("CHAT_API_KEY", "CHAT_API_KEY_FILE", ""),
		ChatModel:   getEnv("CHAT_MODEL", "llama-3.3-70b-versatile"),
		ChatTimeout: getEnvInt("CHAT_TIMEOUT_SECONDS", 120),
		ChatRPS:     getEnvFloat("CHAT_REQUESTS_PER_SECOND", 2.0),

		OTelEnabled: getEnvBool("OTEL_LOGS_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	// 1. Try direct environment variable
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	// 2. Try reading from file specified by fileEnvKey
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
