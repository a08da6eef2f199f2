package catalog

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/catalog-mvc/internal/catalog/controller"
	httpDelivery "github.com/tair/catalog-mvc/internal/catalog/delivery/http"
	"github.com/tair/catalog-mvc/internal/catalog/domain"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/internal/catalog/repository"
	"github.com/tair/catalog-mvc/internal/catalog/service"
	"github.com/tair/catalog-mvc/internal/catalog/usecase"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/command"
	"github.com/tair/catalog-mvc/internal/catalog/usecase/query"
	"github.com/tair/catalog-mvc/internal/config"
	"github.com/tair/catalog-mvc/pkg/auth"
)

// ProvideProductRepository provides the traced product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewProductRepositoryWithTracing(repository.NewGormProductRepository(db))
}

// ProvideCategoryRepository provides the traced category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewCategoryRepositoryWithTracing(repository.NewGormCategoryRepository(db))
}

func ProvideFileSystem() controller.FileSystem {
	return controller.OSFileSystem{}
}

func ProvideWebRoot(cfg *config.Config) controller.WebRoot {
	return controller.WebRoot(cfg.WebRoot)
}

func ProvideTokenManager(cfg *config.Config) (*auth.TokenManager, error) {
	return auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
}

func ProvideUserStore(cfg *config.Config) (*auth.UserStore, error) {
	return auth.ParseUsers(cfg.Users)
}

// ProvideRateLimiter limits POST requests; a nil client disables it
func ProvideRateLimiter(cfg *config.Config, client redis.Cmdable) *httpDelivery.RateLimiter {
	return httpDelivery.NewRateLimiter(client, cfg.RateLimit.Max, cfg.RateLimit.Window)
}

func ProvideAccountHandler(
	cfg *config.Config,
	users *auth.UserStore,
	tokens *auth.TokenManager,
	renderer *httpDelivery.Renderer,
	limiter *httpDelivery.RateLimiter,
) *httpDelivery.AccountHandler {
	return httpDelivery.NewAccountHandler(users, tokens, renderer, limiter, !cfg.IsDevelopment())
}

// ProvideHealthPinger exposes the pool behind GORM for health checks
func ProvideHealthPinger(db *gorm.DB) (httpDelivery.Pinger, error) {
	return db.DB()
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateProductHandler,
	command.NewUpdateProductHandler,
	command.NewRemoveProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetProductByIDHandler,
	query.NewGetProductsHandler,
)

var ServiceSet = wire.NewSet(
	usecase.NewMediator,
	service.NewProductService,
	service.NewCategoryService,
	wire.Bind(new(controller.ProductService), new(*service.ProductService)),
	wire.Bind(new(controller.CategoryService), new(*service.CategoryService)),
)

var ControllerSet = wire.NewSet(
	ProvideFileSystem,
	ProvideWebRoot,
	controller.NewProductsController,
)

var DeliverySet = wire.NewSet(
	dto.NewValidator,
	httpDelivery.NewRenderer,
	httpDelivery.NewMetrics,
	httpDelivery.NewAuthenticator,
	httpDelivery.NewProductHandler,
	httpDelivery.NewAPIHandler,
	ProvideTokenManager,
	ProvideUserStore,
	ProvideRateLimiter,
	ProvideAccountHandler,
	ProvideHealthPinger,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	wire.Struct(new(httpDelivery.Routes), "*"),
	httpDelivery.NewRouter,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	ServiceSet,
	ControllerSet,
	DeliverySet,
)
