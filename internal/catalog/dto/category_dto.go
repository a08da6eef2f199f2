package dto

import "github.com/tair/catalog-mvc/internal/catalog/domain"

// CategoryDTO is the view shape of a category
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func FromCategory(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}

func FromCategories(categories []domain.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, FromCategory(c))
	}
	return dtos
}
