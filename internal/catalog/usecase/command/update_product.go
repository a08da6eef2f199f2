package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID          uint
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
	CategoryID  uint
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	result, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", cmd.ID, err)
	}

	product, found := result.Get()
	if !found {
		return nil, fmt.Errorf("update product %d: %w", cmd.ID, domain.ErrProductNotFound)
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Price = cmd.Price
	product.Stock = cmd.Stock
	product.Image = cmd.Image
	product.CategoryID = cmd.CategoryID
	product.Category = nil

	if err := h.repo.Update(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}
