//go:build wireinject
// +build wireinject

package catalog

import (
	"net/http"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/catalog-mvc/internal/catalog/service"
	"github.com/tair/catalog-mvc/internal/config"
)

// InitializeHTTPHandler initializes the catalog web application with all dependencies
func InitializeHTTPHandler(
	cfg *config.Config,
	db *gorm.DB,
	publisher service.EventPublisher,
	redisClient redis.Cmdable,
	registry *prometheus.Registry,
) (http.Handler, error) {
	wire.Build(AllHandlersSet)
	return nil, nil
}
