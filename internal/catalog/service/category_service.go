package service

import (
	"context"
	"fmt"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
)

// CategoryService lists categories for product forms
type CategoryService struct {
	repo domain.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetCategories returns every category
func (s *CategoryService) GetCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return dto.FromCategories(categories), nil
}
