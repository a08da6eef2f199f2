package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
)

// DefaultCategories are seeded by the migrate command
var DefaultCategories = []string{"Material Escolar", "Eletrônicos", "Acessórios"}

// AutoMigrate creates or updates the catalog tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Category{}, &domain.Product{})
}

// SeedCategories inserts the named categories that do not exist yet
func SeedCategories(ctx context.Context, db *gorm.DB, names []string) (int, error) {
	created := 0
	for _, name := range names {
		result := db.WithContext(ctx).
			Where(domain.Category{Name: name}).
			FirstOrCreate(&domain.Category{Name: name})
		if result.Error != nil {
			return created, fmt.Errorf("failed to seed category %q: %w", name, result.Error)
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}
