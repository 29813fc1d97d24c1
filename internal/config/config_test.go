package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "SEGREGATION_TABLE", "MAX_BODY_BYTES", "PLAN_TIME_BUDGET_MS", "PLAN_MIN_SUPPORT_FRACTION", "PLAN_EPSILON"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SegregationTablePath)
	assert.Equal(t, 1024*1024, cfg.MaxBodyBytes)
	assert.Equal(t, 200*time.Millisecond, cfg.TimeBudget)
	assert.Equal(t, 0.7, cfg.MinSupportFraction)
	assert.Equal(t, 1e-6, cfg.Epsilon)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEGREGATION_TABLE", "/etc/loadplan/adg.yaml")
	t.Setenv("PLAN_TIME_BUDGET_MS", "500")
	t.Setenv("PLAN_MIN_SUPPORT_FRACTION", "0.85")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/loadplan/adg.yaml", cfg.SegregationTablePath)
	assert.Equal(t, 500*time.Millisecond, cfg.TimeBudget)
	assert.Equal(t, 0.85, cfg.MinSupportFraction)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PLAN_TIME_BUDGET_MS", "soon")
	t.Setenv("PLAN_MIN_SUPPORT_FRACTION", "most")

	cfg := Load()

	assert.Equal(t, 200*time.Millisecond, cfg.TimeBudget)
	assert.Equal(t, 0.7, cfg.MinSupportFraction)
}
