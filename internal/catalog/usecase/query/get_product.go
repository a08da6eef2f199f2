package query

import (
	"context"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/pkg/optional"
)

// GetProductByIDQuery represents the query to get a product by ID
type GetProductByIDQuery struct {
	ID uint
}

// GetProductByIDHandler handles get product by id query
type GetProductByIDHandler struct {
	repo domain.ProductRepository
}

// NewGetProductByIDHandler creates a new get product by id handler
func NewGetProductByIDHandler(repo domain.ProductRepository) *GetProductByIDHandler {
	return &GetProductByIDHandler{repo: repo}
}

// Handle executes the get product by id query. A missing product is an empty
// result, not an error.
func (h *GetProductByIDHandler) Handle(ctx context.Context, query GetProductByIDQuery) (optional.Optional[domain.Product], error) {
	return h.repo.GetByID(ctx, query.ID)
}
