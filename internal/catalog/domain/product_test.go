package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_IsAvailable(t *testing.T) {
	assert.True(t, (&Product{Stock: 3}).IsAvailable())
	assert.False(t, (&Product{Stock: 0}).IsAvailable())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "products", Product{}.TableName())
	assert.Equal(t, "categories", Category{}.TableName())
}
