package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/pkg/optional"
)

// bindProduct reads a product form. Fields that cannot be parsed keep their
// zero value and are reported in the returned errors together with the
// validation failures.
func bindProduct(r *http.Request, v *dto.Validator) (dto.ProductDTO, dto.FieldErrors, error) {
	if err := r.ParseForm(); err != nil {
		return dto.ProductDTO{}, nil, err
	}

	parseErrors := dto.FieldErrors{}
	product := dto.ProductDTO{
		Name:        strings.TrimSpace(r.PostForm.Get("name")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Image:       strings.TrimSpace(r.PostForm.Get("image")),
	}

	if raw := strings.TrimSpace(r.PostForm.Get("id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			parseErrors["id"] = "The id is invalid"
		}
		product.ID = uint(id)
	}

	if raw := strings.TrimSpace(r.PostForm.Get("price")); raw != "" {
		price, err := parsePrice(raw)
		if err != nil {
			parseErrors["price"] = "The price must be a number"
		}
		product.Price = price
	}

	if raw := strings.TrimSpace(r.PostForm.Get("stock")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			parseErrors["stock"] = "The stock must be a whole number"
		}
		product.Stock = stock
	}

	if raw := strings.TrimSpace(r.PostForm.Get("category_id")); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			parseErrors["category_id"] = "The category_id is invalid"
		}
		product.CategoryID = uint(categoryID)
	}

	errs := v.Validate(product)
	for field, msg := range parseErrors {
		errs[field] = msg
	}
	return product, errs, nil
}

// parsePrice accepts both "12.50" and "12,50"
func parsePrice(raw string) (decimal.Decimal, error) {
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	return decimal.NewFromString(raw)
}

// parseID turns a route value into an optional id
func parseID(raw string) optional.Optional[uint] {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return optional.None[uint]()
	}
	return optional.Some(uint(id))
}
