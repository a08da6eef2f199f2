package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/catalog-mvc/internal/catalog/controller"
	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/pkg/logger"
	"github.com/tair/catalog-mvc/pkg/optional"
)

const (
	productsPath = "/products"
	loginPath    = "/account/login"
)

// ProductHandler serves the product pages on top of the products controller
type ProductHandler struct {
	controller *controller.ProductsController
	validator  *dto.Validator
	renderer   *Renderer
	metrics    *Metrics
	limiter    *RateLimiter
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	c *controller.ProductsController,
	v *dto.Validator,
	renderer *Renderer,
	metrics *Metrics,
	limiter *RateLimiter,
) *ProductHandler {
	return &ProductHandler{
		controller: c,
		validator:  v,
		renderer:   renderer,
		metrics:    metrics,
		limiter:    limiter,
	}
}

// RegisterRoutes registers the product pages. Edit, delete and details also
// answer without an id, which always ends in the not found page.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	admin := AdminMiddleware(h.Forbidden)
	m := h.metrics.Middleware

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, productsPath, http.StatusFound)
	}).Methods(http.MethodGet)

	router.HandleFunc("/products", m("/products", h.Index)).Methods(http.MethodGet)
	router.HandleFunc("/products/create", m("/products/create", h.Create)).Methods(http.MethodGet)
	router.HandleFunc("/products/create", m("/products/create", h.limiter.Middleware(h.CreatePost))).Methods(http.MethodPost)

	router.HandleFunc("/products/edit", m("/products/edit", h.Edit)).Methods(http.MethodGet)
	router.HandleFunc("/products/edit/{id}", m("/products/edit/{id}", h.Edit)).Methods(http.MethodGet)
	router.HandleFunc("/products/edit", m("/products/edit", h.limiter.Middleware(h.EditPost))).Methods(http.MethodPost)

	// Admin routes (admin role required)
	router.HandleFunc("/products/delete", m("/products/delete", admin(h.Delete))).Methods(http.MethodGet)
	router.HandleFunc("/products/delete/{id}", m("/products/delete/{id}", admin(h.Delete))).Methods(http.MethodGet)
	router.HandleFunc("/products/delete/{id}", m("/products/delete/{id}", admin(h.limiter.Middleware(h.DeleteConfirmed)))).Methods(http.MethodPost)

	router.HandleFunc("/products/details", m("/products/details", h.Details)).Methods(http.MethodGet)
	router.HandleFunc("/products/details/{id}", m("/products/details/{id}", h.Details)).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
}

// Index handles GET /products
func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Index(r.Context())
	if err == nil {
		if products, ok := result.Model.([]dto.ProductDTO); ok {
			h.metrics.SetTotalProducts(len(products))
		}
	}
	h.respond(w, r, result, err, nil)
}

// Create handles GET /products/create
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Create(r.Context())
	h.respond(w, r, result, err, nil)
}

// CreatePost handles POST /products/create
func (h *ProductHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	product, errs, err := bindProduct(r, h.validator)
	if err != nil {
		h.badRequest(w, r, "The form could not be read.")
		return
	}

	result, err := h.controller.CreatePost(r.Context(), product, len(errs) == 0)
	h.respond(w, r, result, err, errs)
}

// Edit handles GET /products/edit/{id}
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Edit(r.Context(), routeID(r))
	h.respond(w, r, result, err, nil)
}

// EditPost handles POST /products/edit
func (h *ProductHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	product, errs, err := bindProduct(r, h.validator)
	if err != nil {
		h.badRequest(w, r, "The form could not be read.")
		return
	}

	result, err := h.controller.EditPost(r.Context(), product, len(errs) == 0)
	h.respond(w, r, result, err, errs)
}

// Delete handles GET /products/delete/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Delete(r.Context(), routeID(r))
	h.respond(w, r, result, err, nil)
}

// DeleteConfirmed handles POST /products/delete/{id}
func (h *ProductHandler) DeleteConfirmed(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(r).Get()
	if !ok {
		h.NotFound(w, r)
		return
	}

	result, err := h.controller.DeleteConfirmed(r.Context(), id)
	h.respond(w, r, result, err, nil)
}

// Details handles GET /products/details/{id}
func (h *ProductHandler) Details(w http.ResponseWriter, r *http.Request) {
	result, err := h.controller.Details(r.Context(), routeID(r))
	h.respond(w, r, result, err, nil)
}

// NotFound renders the not found page
func (h *ProductHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, viewNotFound, Page{})
}

// Forbidden renders the access denied page
func (h *ProductHandler) Forbidden(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusForbidden, viewError, Page{Message: "Only administrators can delete products."})
}

func (h *ProductHandler) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusBadRequest, viewError, Page{Message: message})
}

// respond turns a controller result into an HTTP response
func (h *ProductHandler) respond(w http.ResponseWriter, r *http.Request, result controller.Result, err error, errs dto.FieldErrors) {
	if err != nil {
		h.fail(w, r, err)
		return
	}

	switch result.Status {
	case controller.StatusRedirect:
		http.Redirect(w, r, actionPath(result.Action), http.StatusSeeOther)
	case controller.StatusNotFound:
		h.NotFound(w, r)
	default:
		h.render(w, r, http.StatusOK, result.View, Page{
			Model:  result.Model,
			Data:   result.Data,
			Errors: errs,
		})
	}
}

func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		h.NotFound(w, r)
	case errors.Is(err, domain.ErrCategoryNotFound):
		h.badRequest(w, r, "The selected category does not exist.")
	case errors.Is(err, context.Canceled):
		logger.Warn(r.Context()).Err(err).Msg("Request canceled")
	default:
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Failed to process request")
		h.render(w, r, http.StatusInternalServerError, viewError, Page{})
	}
}

func (h *ProductHandler) render(w http.ResponseWriter, r *http.Request, status int, view string, page Page) {
	page.User = ClaimsFromContext(r.Context())
	if err := h.renderer.Render(w, status, view, page); err != nil {
		logger.Error(r.Context()).Err(err).Str("view", view).Msg("Failed to render view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func routeID(r *http.Request) optional.Optional[uint] {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return optional.None[uint]()
	}
	return parseID(raw)
}

var actionPaths = map[string]string{
	controller.ActionIndex: productsPath,
}

func actionPath(action string) string {
	if p, ok := actionPaths[action]; ok {
		return p
	}
	return productsPath
}
