package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_HOST", "KAFKA_BROKERS", "RATE_LIMIT_MAX", "ENVIRONMENT", "WEB_ROOT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "./wwwroot", cfg.WebRoot)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 30, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")
	t.Setenv("DB_LOG_QUERIES", "true")
	t.Setenv("JWT_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.RateLimit.Max)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.Database.LogQueries)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
