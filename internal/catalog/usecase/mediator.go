package usecase

import (
	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/command"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/query"
	"github.com/tair/catalog-mvc/pkg/mediator"
)

// NewMediator binds every catalog query and command to its handler
func NewMediator(
	getProductByIDHandler *query.GetProductByIDHandler,
	getProductsHandler *query.GetProductsHandler,
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	removeHandler *command.RemoveProductHandler,
) (*mediator.Mediator, error) {
	b := mediator.NewBuilder()

	// Queries
	mediator.Register(b, getProductByIDHandler.Handle)
	mediator.Register(b, getProductsHandler.Handle)

	// Commands
	mediator.Register(b, createHandler.Handle)
	mediator.Register(b, updateHandler.Handle)
	mediator.Register(b, removeHandler.Handle)

	return b.Build()
}

// NewMediatorForRepository wires every handler against one repository
func NewMediatorForRepository(repo domain.ProductRepository) (*mediator.Mediator, error) {
	return NewMediator(
		query.NewGetProductByIDHandler(repo),
		query.NewGetProductsHandler(repo),
		command.NewCreateProductHandler(repo),
		command.NewUpdateProductHandler(repo),
		command.NewRemoveProductHandler(repo),
	)
}
