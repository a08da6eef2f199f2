package command

import (
	"context"
	"fmt"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
)

// RemoveProductCommand represents the command to delete a product
type RemoveProductCommand struct {
	ID uint
}

// RemoveProductHandler handles product deletion command
type RemoveProductHandler struct {
	repo domain.ProductRepository
}

// NewRemoveProductHandler creates a new remove product handler
func NewRemoveProductHandler(repo domain.ProductRepository) *RemoveProductHandler {
	return &RemoveProductHandler{repo: repo}
}

// Handle executes the remove product command and returns the removed product
func (h *RemoveProductHandler) Handle(ctx context.Context, cmd RemoveProductCommand) (*domain.Product, error) {
	result, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", cmd.ID, err)
	}

	product, found := result.Get()
	if !found {
		return nil, fmt.Errorf("remove product %d: %w", cmd.ID, domain.ErrProductNotFound)
	}

	if err := h.repo.Remove(ctx, cmd.ID); err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return &product, nil
}
