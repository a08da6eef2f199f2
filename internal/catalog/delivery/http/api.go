package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/query"
	"github.com/tair/catalog-mvc/pkg/logger"
	"github.com/tair/catalog-mvc/pkg/mediator"
	"github.com/tair/catalog-mvc/pkg/optional"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIHandler serves the read-only JSON API straight from the mediator
type APIHandler struct {
	mediator *mediator.Mediator
	metrics  *Metrics
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(m *mediator.Mediator, metrics *Metrics) *APIHandler {
	return &APIHandler{mediator: m, metrics: metrics}
}

func (h *APIHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metrics.Middleware("/api/products", h.ListProducts)).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{id}", h.metrics.Middleware("/api/products/{id}", h.GetProduct)).Methods(http.MethodGet)
}

// ListProducts godoc
// @Summary List all products
// @Description Get every product with its category, ordered by id
// @Tags Products
// @Produce json
// @Success 200 {object} Response{data=[]dto.ProductDTO}
// @Failure 500 {object} Response
// @Router /api/products [get]
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := mediator.Send[[]domain.Product](r.Context(), h.mediator, query.GetProductsQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	h.metrics.SetTotalProducts(len(products))
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    dto.FromProducts(products),
	})
}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a specific product by its ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Response{data=dto.ProductDTO}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/products/{id} [get]
func (h *APIHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(mux.Vars(r)["id"]).Get()
	if !ok {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	result, err := mediator.Send[optional.Optional[domain.Product]](r.Context(), h.mediator, query.GetProductByIDQuery{ID: id})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = http.StatusServiceUnavailable
		}
		logger.Error(r.Context()).Err(err).Uint("product_id", id).Msg("Failed to get product")
		respondJSON(w, status, Response{
			Success: false,
			Error:   "Failed to get product",
		})
		return
	}

	product, found := result.Get()
	if !found {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    dto.FromProduct(product),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
