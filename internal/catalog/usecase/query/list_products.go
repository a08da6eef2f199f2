package query

import (
	"context"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
)

// GetProductsQuery represents the query to list all products
type GetProductsQuery struct{}

// GetProductsHandler handles list products query
type GetProductsHandler struct {
	repo domain.ProductRepository
}

// NewGetProductsHandler creates a new list products handler
func NewGetProductsHandler(repo domain.ProductRepository) *GetProductsHandler {
	return &GetProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *GetProductsHandler) Handle(ctx context.Context, query GetProductsQuery) ([]domain.Product, error) {
	return h.repo.GetAll(ctx)
}
