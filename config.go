package main

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	RedisURL string
	LogLevel string
	CacheTTL time.Duration
}

// newConfig loads configuration from environment variables, falling back
// to defaults for missing or invalid values
func newConfig() *Config {
	cacheTTL := 60 * time.Second
	rawTTL := getEnv("CACHE_TTL_SECONDS", "60")
	if seconds, err := strconv.Atoi(rawTTL); err == nil && seconds >= 0 {
		cacheTTL = time.Duration(seconds) * time.Second
	} else {
		log.Warnf("Invalid CACHE_TTL_SECONDS %q, using default of 60s", rawTTL)
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		RedisURL: getEnv("REDIS_URL", "redis:6379"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		CacheTTL: cacheTTL,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
