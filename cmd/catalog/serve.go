package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	_ "github.com/tair/catalog-mvc/docs"
	"github.com/tair/catalog-mvc/internal/catalog"
	"github.com/tair/catalog-mvc/internal/catalog/repository"
	"github.com/tair/catalog-mvc/internal/catalog/service"
	"github.com/tair/catalog-mvc/kafka"
	"github.com/tair/catalog-mvc/pkg/database"
	"github.com/tair/catalog-mvc/pkg/logger"
	"github.com/tair/catalog-mvc/pkg/tracing"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "auto-migrate", true, "run migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting catalog service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.ServiceVersion, cfg.JaegerURL)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if migrate {
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
		if _, err := repository.SeedCategories(ctx, db, repository.DefaultCategories); err != nil {
			return err
		}
		logger.Logger.Info().Msg("Database initialized successfully")
	}

	redisClient := connectRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := newPublisher()
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// redis.Cmdable must stay a nil interface when Redis is unavailable
	var limiterClient redis.Cmdable
	if redisClient != nil {
		limiterClient = redisClient
	}

	handler, err := catalog.InitializeHTTPHandler(cfg, db, publisher, limiterClient, registry)
	if err != nil {
		return err
	}

	// CORS middleware
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// connectRedis returns nil when Redis is not configured or unreachable
func connectRedis(ctx context.Context) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("Redis not configured, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, rate limiting disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return client
}

type closablePublisher interface {
	service.EventPublisher
	Close() error
}

// newPublisher falls back to a no-op publisher without brokers
func newPublisher() closablePublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, product events disabled")
		return kafka.NopPublisher{}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Kafka unavailable, product events disabled")
		return kafka.NopPublisher{}
	}
	return publisher
}
