package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_DSN(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5432",
		User:     "catalog",
		Password: "secret",
		DBName:   "catalogdb",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=catalog password=secret dbname=catalogdb sslmode=disable", cfg.DSN())
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 25, orDefault(0, 25))
	assert.Equal(t, 7, orDefault(7, 25))
}
