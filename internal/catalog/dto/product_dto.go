package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/command"
)

// ProductDTO is the form and view shape of a product
type ProductDTO struct {
	ID          uint            `json:"id" form:"id"`
	Name        string          `json:"name" form:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" form:"description" validate:"required,min=5,max=200"`
	Price       decimal.Decimal `json:"price" form:"price" validate:"gte=1,lte=9999"`
	Stock       int             `json:"stock" form:"stock" validate:"gte=1,lte=9999"`
	Image       string          `json:"image" form:"image" validate:"max=250"`
	CategoryID  uint            `json:"category_id" form:"category_id" validate:"required"`
	Category    *CategoryDTO    `json:"category,omitempty" form:"-" validate:"-"`
}

// FromProduct maps a domain product to its DTO
func FromProduct(p domain.Product) ProductDTO {
	d := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
	}
	if p.Category != nil {
		c := FromCategory(*p.Category)
		d.Category = &c
	}
	return d
}

// FromProducts maps a product list, keeping its order
func FromProducts(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, FromProduct(p))
	}
	return dtos
}

// CategoryName is the display name of the product's category, if loaded
func (d ProductDTO) CategoryName() string {
	if d.Category == nil {
		return ""
	}
	return d.Category.Name
}

func (d ProductDTO) ToCreateCommand() command.CreateProductCommand {
	return command.CreateProductCommand{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Image:       d.Image,
		CategoryID:  d.CategoryID,
	}
}

func (d ProductDTO) ToUpdateCommand() command.UpdateProductCommand {
	return command.UpdateProductCommand{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		Image:       d.Image,
		CategoryID:  d.CategoryID,
	}
}
