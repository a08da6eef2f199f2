package service

import (
	"context"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/command"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/query"
	"github.com/tair/catalog-mvc/kafka"
	"github.com/tair/catalog-mvc/pkg/logger"
	"github.com/tair/catalog-mvc/pkg/mediator"
	"github.com/tair/catalog-mvc/pkg/optional"
)

// EventPublisher receives product change events
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.ProductEvent) error
}

// ProductService is the product facade used by the web layer. Reads and
// writes go through the mediator; successful writes emit a ProductEvent.
type ProductService struct {
	mediator  *mediator.Mediator
	publisher EventPublisher
}

// NewProductService creates a new product service
func NewProductService(m *mediator.Mediator, publisher EventPublisher) *ProductService {
	return &ProductService{mediator: m, publisher: publisher}
}

// GetProducts returns every product
func (s *ProductService) GetProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := mediator.Send[[]domain.Product](ctx, s.mediator, query.GetProductsQuery{})
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(products), nil
}

// GetByID returns the product with the given id, or an empty result
func (s *ProductService) GetByID(ctx context.Context, id uint) (optional.Optional[dto.ProductDTO], error) {
	result, err := mediator.Send[optional.Optional[domain.Product]](ctx, s.mediator, query.GetProductByIDQuery{ID: id})
	if err != nil {
		return optional.None[dto.ProductDTO](), err
	}

	product, found := result.Get()
	if !found {
		return optional.None[dto.ProductDTO](), nil
	}
	return optional.Some(dto.FromProduct(product)), nil
}

// Add creates a product from the DTO
func (s *ProductService) Add(ctx context.Context, d dto.ProductDTO) error {
	product, err := mediator.Send[*domain.Product](ctx, s.mediator, d.ToCreateCommand())
	if err != nil {
		return err
	}
	s.publish(ctx, kafka.EventTypeProductCreated, product)
	return nil
}

// Update overwrites the product identified by d.ID
func (s *ProductService) Update(ctx context.Context, d dto.ProductDTO) error {
	product, err := mediator.Send[*domain.Product](ctx, s.mediator, d.ToUpdateCommand())
	if err != nil {
		return err
	}
	s.publish(ctx, kafka.EventTypeProductUpdated, product)
	return nil
}

// Remove deletes the product with the given id
func (s *ProductService) Remove(ctx context.Context, id uint) error {
	product, err := mediator.Send[*domain.Product](ctx, s.mediator, command.RemoveProductCommand{ID: id})
	if err != nil {
		return err
	}
	s.publish(ctx, kafka.EventTypeProductDeleted, product)
	return nil
}

// publish never fails the caller: the write is already committed
func (s *ProductService) publish(ctx context.Context, eventType string, product *domain.Product) {
	event := kafka.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		CategoryID: product.CategoryID,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", eventType).
			Uint("product_id", product.ID).
			Msg("Failed to publish product event")
	}
}
