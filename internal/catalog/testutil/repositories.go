// Package testutil holds in-memory collaborators for catalog tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/pkg/optional"
)

// ProductRepository is an in-memory domain.ProductRepository. Err, when set,
// is returned by every method.
type ProductRepository struct {
	mu       sync.Mutex
	products map[uint]domain.Product
	nextID   uint

	Err   error
	Calls []string
}

// NewProductRepository returns a repository holding products in insertion order
func NewProductRepository(products ...domain.Product) *ProductRepository {
	r := &ProductRepository{products: make(map[uint]domain.Product), nextID: 1}
	for _, p := range products {
		r.products[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *ProductRepository) record(call string) error {
	r.Calls = append(r.Calls, call)
	return r.Err
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("GetByID"); err != nil {
		return optional.None[domain.Product](), err
	}
	if err := ctx.Err(); err != nil {
		return optional.None[domain.Product](), err
	}
	p, ok := r.products[id]
	if !ok {
		return optional.None[domain.Product](), nil
	}
	return optional.Some(p), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("GetAll"); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Create"); err != nil {
		return err
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Update"); err != nil {
		return err
	}
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Remove(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("Remove"); err != nil {
		return err
	}
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// Stored returns the product currently held under id
func (r *ProductRepository) Stored(id uint) (domain.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	return p, ok
}

// CategoryRepository is an in-memory domain.CategoryRepository
type CategoryRepository struct {
	Categories []domain.Category
	Err        error
	Calls      int
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.Category(nil), r.Categories...), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (optional.Optional[domain.Category], error) {
	r.Calls++
	if r.Err != nil {
		return optional.None[domain.Category](), r.Err
	}
	for _, c := range r.Categories {
		if c.ID == id {
			return optional.Some(c), nil
		}
	}
	return optional.None[domain.Category](), nil
}
