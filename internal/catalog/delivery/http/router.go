package http

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/catalog-mvc/internal/catalog/controller"
)

// Routes groups everything the catalog router serves
type Routes struct {
	Products *ProductHandler
	API      *APIHandler
	Account  *AccountHandler
	Auth     *Authenticator
	Health   Pinger
	Metrics  prometheus.Gatherer
	WebRoot  controller.WebRoot
}

// NewRouter registers every route and wraps the router with tracing,
// request logging and optional authentication
func NewRouter(routes Routes) http.Handler {
	router := mux.NewRouter()

	routes.Products.RegisterRoutes(router)
	routes.API.RegisterRoutes(router)
	routes.Account.RegisterRoutes(router)
	RegisterHealthCheck(router, routes.Health)
	RegisterSwaggerDocs(router)

	if routes.Metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(routes.Metrics, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	images := http.Dir(filepath.Join(string(routes.WebRoot), "images"))
	router.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(images)))

	var handler http.Handler = router
	handler = routes.Auth.OptionalAuth(handler)
	handler = LoggingMiddleware(handler)
	handler = TracingMiddleware("catalog-http")(handler)
	return handler
}
