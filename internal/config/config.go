package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort      string
	DatabaseURL   string
	DBPoolSize    int
	RedisURL      string
	RedisPoolSize int
	CacheTTL      int // seconds
	SessionSecret string
	SessionTTL    int // seconds
}

// Load reads configuration from environment variables with defaults.
// DATABASE_URL accepts either a postgres:// DSN or a SQLite file path.
func Load() *Config {
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "planera.db"),
		DBPoolSize:    getIntEnv("DB_POOL_SIZE", 25),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 50),
		CacheTTL:      getIntEnv("CACHE_TTL_SEC", 300),
		SessionSecret: getEnv("SESSION_SECRET", "clave_secreta_por_defecto_cambiar"),
		SessionTTL:    getIntEnv("SESSION_TTL_SEC", 24*3600),
	}
}

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}
