// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	// SegregationTablePath points at a YAML regime table; empty means the
	// built-in default matrix.
	SegregationTablePath string
	// MaxBodyBytes caps request body size.
	MaxBodyBytes int

	// Engine defaults, overridable per request via options.
	TimeBudget         time.Duration
	MinSupportFraction float64
	Epsilon            float64
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SegregationTablePath: getEnv("SEGREGATION_TABLE", ""),
		MaxBodyBytes:         getEnvInt("MAX_BODY_BYTES", 1*1024*1024),
		TimeBudget:           time.Duration(getEnvInt("PLAN_TIME_BUDGET_MS", 200)) * time.Millisecond,
		MinSupportFraction:   getEnvFloat("PLAN_MIN_SUPPORT_FRACTION", 0.7),
		Epsilon:              getEnvFloat("PLAN_EPSILON", 1e-6),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
