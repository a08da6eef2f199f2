package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/catalog-mvc/pkg/database"
)

// Config holds the catalog service configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       string
	HTTPPort       string

	Database database.Config

	// WebRoot is the directory serving static assets; product images live under WebRoot/images.
	WebRoot string

	JWTSecret string
	TokenTTL  time.Duration
	Users     string

	RedisAddr     string
	RedisPassword string
	RateLimit     RateLimitConfig

	KafkaBrokers []string
	JaegerURL    string
	CORSOrigins  []string
}

// RateLimitConfig bounds POST requests per client in a sliding window
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// Load loads the configuration from environment variables
func Load() *Config {
	return &Config{
		ServiceName:    getEnv("SERVICE_NAME", "catalog-service"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Database: database.Config{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "catalogdb"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			LogQueries:      getEnvBool("DB_LOG_QUERIES", false),
		},
		WebRoot:       getEnv("WEB_ROOT", "./wwwroot"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:      getEnvDuration("JWT_TTL", 24*time.Hour),
		Users:         getEnv("CATALOG_USERS", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RateLimit: RateLimitConfig{
			Max:    getEnvInt("RATE_LIMIT_MAX", 30),
			Window: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		JaegerURL:    getEnv("JAEGER_ENDPOINT", ""),
		CORSOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
