package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/pkg/optional"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Category], error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return optional.None[domain.Category](), nil
	}
	if err != nil {
		return optional.None[domain.Category](), err
	}
	return optional.Some(category), nil
}
