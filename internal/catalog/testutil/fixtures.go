package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
)

// Categories used across catalog tests
var (
	Stationery  = domain.Category{ID: 1, Name: "Material Escolar"}
	Electronics = domain.Category{ID: 2, Name: "Eletrônicos"}
)

// NewProduct builds a valid product in the given category
func NewProduct(id uint, name string, category domain.Category) domain.Product {
	c := category
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("12.50"),
		Stock:       10,
		Image:       name + ".jpg",
		CategoryID:  category.ID,
		Category:    &c,
	}
}
