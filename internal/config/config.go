package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	OracleURL       string
	OracleAPIKey    string
	OracleTimeout   time.Duration
	RedisURL        string
	LogLevel        string
	Environment     string
	CORSOrigins     string
	RefreshInterval time.Duration
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		OracleURL:       getEnv("ORACLE_URL", "http://localhost:8090"),
		OracleAPIKey:    getEnv("ORACLE_API_KEY", ""),
		OracleTimeout:   getDuration("ORACLE_TIMEOUT_SECONDS", 30),
		RedisURL:        getEnv("REDIS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RefreshInterval: getDuration("REFRESH_INTERVAL_SECONDS", 900),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
