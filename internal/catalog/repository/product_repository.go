package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/pkg/optional"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Product], error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return optional.None[domain.Product](), nil
	}
	if err != nil {
		return optional.None[domain.Product](), err
	}
	return optional.Some(product), nil
}

func (r *GormProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Preload("Category").Order("id").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Omit("Category").Create(product).Error
	})
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, product.CategoryID); err != nil {
			return err
		}
		return tx.Omit("Category").Save(product).Error
	})
}

func (r *GormProductRepository) Remove(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ensureCategory keeps products from referencing a category that does not exist
func ensureCategory(tx *gorm.DB, categoryID uint) error {
	var count int64
	if err := tx.Model(&domain.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
