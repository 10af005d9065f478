package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/config"
	domainRepo "github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/internal/infrastructure/database"
	"github.com/sangkips/retail-api/internal/infrastructure/messaging"
	"github.com/sangkips/retail-api/internal/infrastructure/repository"
	"github.com/sangkips/retail-api/internal/infrastructure/storage"
	"github.com/sangkips/retail-api/internal/presentation/http/handler"
	"github.com/sangkips/retail-api/internal/presentation/http/middleware"
	"github.com/sangkips/retail-api/internal/presentation/http/routes"
	"github.com/sangkips/retail-api/pkg/utils"
)

const (
	shutdownTimeout         = 10 * time.Second
	idempotencyCleanupEvery = time.Hour
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	snapshots, closeSnapshots, err := newSnapshotRepository(cfg)
	if err != nil {
		return err
	}
	defer closeSnapshots()

	store := storage.Open(ctx, snapshots)
	if ok, lastErr := store.Healthy(); !ok {
		logger.Warn("store opened degraded, writes refused until storage recovers", "err", lastErr)
	}

	publisher, err := newPublisher(ctx, &cfg.Broker)
	if err != nil {
		return err
	}
	defer publisher.Close()

	now := time.Now
	factory := service.NewRecordFactory(utils.NewIDGenerator(), now)

	productService := service.NewProductService(store, factory)
	customerService := service.NewCustomerService(store, factory)
	transactionService := service.NewTransactionService(store, factory, publisher)
	reportService := service.NewReportService(store, now)

	idempotencyRepo := repository.NewIdempotencyRepository()
	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(store, cfg.App.Name, now),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Report:      handler.NewReportHandler(reportService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter: middleware.NewClientRateLimiter(ctx,
			middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration)),
		Now: now,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "name", cfg.App.Name, "port", cfg.App.Port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newSnapshotRepository builds the JSON document backend, wrapped with a
// write-through mirror when one is configured
func newSnapshotRepository(cfg *config.Config) (domainRepo.SnapshotRepository, func(), error) {
	primary := storage.NewJSONFileRepository(cfg.Storage.Path)

	switch cfg.Storage.MirrorDriver {
	case config.MirrorNone, "":
		return primary, func() {}, nil

	case config.MirrorFile:
		mirror := storage.NewJSONFileRepository(cfg.Storage.MirrorPath)
		return storage.NewCachedRepository(primary, mirror), func() {}, nil

	case config.MirrorPostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mirror database: %w", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("migrate mirror database: %w", err)
		}
		mirror := repository.NewSnapshotRepository(db)
		closeDB := func() {
			if err := database.Close(db); err != nil {
				slog.Warn("close mirror database", "err", err)
			}
		}
		return storage.NewCachedRepository(primary, mirror), closeDB, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage mirror driver %q", cfg.Storage.MirrorDriver)
	}
}

func newPublisher(ctx context.Context, cfg *config.BrokerConfig) (messaging.TransactionPublisher, error) {
	if !cfg.Enabled() {
		return messaging.NoopPublisher{}, nil
	}
	if err := messaging.EnsureTopic(ctx, cfg.SeedBrokers, cfg.TransactionsTopic); err != nil {
		return nil, err
	}
	publisher, err := messaging.NewKafkaPublisher(ctx, cfg.SeedBrokers, cfg.TransactionsTopic)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencyCleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				slog.Warn("sweep idempotency keys", "err", err)
			}
		}
	}
}
