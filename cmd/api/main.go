package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/velora-storefront/api/controllers"
	"github.com/angelmondragon/velora-storefront/api/routes"
	"github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/catalog"
	"github.com/angelmondragon/velora-storefront/internal/layout"
	"github.com/angelmondragon/velora-storefront/internal/notifications"
	"github.com/angelmondragon/velora-storefront/internal/render"
	"github.com/angelmondragon/velora-storefront/pkg/config"
	"github.com/angelmondragon/velora-storefront/pkg/db"
	"github.com/angelmondragon/velora-storefront/pkg/db/models"
	"github.com/angelmondragon/velora-storefront/pkg/logger"
	"github.com/angelmondragon/velora-storefront/pkg/metrics"
	"github.com/angelmondragon/velora-storefront/pkg/migrate"
	"github.com/angelmondragon/velora-storefront/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

// backend is the storage wiring selected by VELORA_STORAGE_BACKEND.
type backend struct {
	slots   cart.SlotStore
	toasts  notifications.Store
	pingers map[string]controllers.Pinger
	closers []io.Closer
}

func (b *backend) Close() error {
	var err error
	for i := len(b.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.closers[i].Close())
	}
	return err
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	center, err := notifications.NewCenter(stores.toasts, time.Now)
	if err != nil {
		logg.Error(ctx, "failed to create notification center", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:    stores.slots,
		Notifier: center,
		Metrics:  metrics.NewCartMetrics(registry),
		Logger:   logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	renderer, err := render.New(render.Options{
		CurrencyLabel: cfg.Storefront.CurrencyLabel,
		ShopURL:       cfg.Storefront.ShopURL,
	})
	if err != nil {
		logg.Error(ctx, "failed to parse templates", err)
		os.Exit(1)
	}

	extractor := catalog.NewExtractor(catalog.NewIDGenerator(time.Now, nil))
	header := layout.NewController(layout.Options{
		ScrollThreshold: cfg.Layout.ScrollThreshold,
		PreloaderDelay:  cfg.Layout.PreloaderDelay,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, stores.pingers, registry, cartService, center, renderer, extractor, header),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*backend, error) {
	b := &backend{pingers: map[string]controllers.Pinger{}}

	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, redisClient)
		b.pingers["redis"] = redisClient
		b.slots = cart.NewRedisStore(redisClient, cfg.Storage.SlotTTL)
		b.toasts = notifications.NewRedisStore(redisClient)

	case config.StoragePostgres, config.StorageSQLite:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, dbClient)
		b.pingers["database"] = dbClient
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return nil, multierr.Append(err, b.Close())
		}
		if cfg.Storage.Backend == config.StorageSQLite {
			if err := dbClient.DB().WithContext(ctx).AutoMigrate(&models.StorageSlot{}); err != nil {
				return nil, multierr.Append(err, b.Close())
			}
		}
		b.slots = cart.NewGormStore(dbClient.DB())
		b.toasts = notifications.NewMemoryStore(time.Now)

	default:
		memory := cart.NewMemoryStore()
		b.pingers["memory"] = memory
		b.slots = memory
		b.toasts = notifications.NewMemoryStore(time.Now)
	}

	if cfg.Storage.Backend != config.StorageRedis && (cfg.Redis.URL != "" || cfg.Redis.Address != "") {
		// Toasts go to redis whenever it is configured.
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, multierr.Append(err, b.Close())
		}
		b.closers = append(b.closers, redisClient)
		b.pingers["redis"] = redisClient
		b.toasts = notifications.NewRedisStore(redisClient)
	}

	return b, nil
}
