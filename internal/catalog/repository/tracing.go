package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/pkg/optional"
)

var tracer = otel.Tracer("catalog-repository")

// ProductRepositoryWithTracing wraps a ProductRepository with tracing
type ProductRepositoryWithTracing struct {
	next domain.ProductRepository
}

// NewProductRepositoryWithTracing creates a new repository with tracing
func NewProductRepositoryWithTracing(next domain.ProductRepository) *ProductRepositoryWithTracing {
	return &ProductRepositoryWithTracing{next: next}
}

// GetByID with tracing
func (r *ProductRepositoryWithTracing) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Product], error) {
	ctx, span := tracer.Start(ctx, "repository.Product.GetByID",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	result, err := r.next.GetByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return result, err
	}

	product, found := result.Get()
	span.SetAttributes(attribute.Bool("product.found", found))
	if found {
		span.SetAttributes(
			attribute.String("product.name", product.Name),
			attribute.Int("product.category_id", int(product.CategoryID)),
		)
	}
	return result, nil
}

// GetAll with tracing
func (r *ProductRepositoryWithTracing) GetAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Product.GetAll")
	defer span.End()

	products, err := r.next.GetAll(ctx)
	if err != nil {
		recordError(span, err)
		return products, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

// Create with tracing
func (r *ProductRepositoryWithTracing) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.price", product.Price.String()),
			attribute.Int("product.stock", product.Stock),
			attribute.Int("product.category_id", int(product.CategoryID)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	return nil
}

// Update with tracing
func (r *ProductRepositoryWithTracing) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Update",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.String("product.name", product.Name),
			attribute.String("product.price", product.Price.String()),
		),
	)
	defer span.End()

	if err := r.next.Update(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// Remove with tracing
func (r *ProductRepositoryWithTracing) Remove(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Product.Remove",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
		),
	)
	defer span.End()

	if err := r.next.Remove(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// CategoryRepositoryWithTracing wraps a CategoryRepository with tracing
type CategoryRepositoryWithTracing struct {
	next domain.CategoryRepository
}

// NewCategoryRepositoryWithTracing creates a new repository with tracing
func NewCategoryRepositoryWithTracing(next domain.CategoryRepository) *CategoryRepositoryWithTracing {
	return &CategoryRepositoryWithTracing{next: next}
}

// GetAll with tracing
func (r *CategoryRepositoryWithTracing) GetAll(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "repository.Category.GetAll")
	defer span.End()

	categories, err := r.next.GetAll(ctx)
	if err != nil {
		recordError(span, err)
		return categories, err
	}

	span.SetAttributes(attribute.Int("result.count", len(categories)))
	return categories, nil
}

// GetByID with tracing
func (r *CategoryRepositoryWithTracing) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Category], error) {
	ctx, span := tracer.Start(ctx, "repository.Category.GetByID",
		trace.WithAttributes(
			attribute.Int("category.id", int(id)),
		),
	)
	defer span.End()

	result, err := r.next.GetByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return result, err
	}

	span.SetAttributes(attribute.Bool("category.found", result.IsPresent()))
	return result, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
