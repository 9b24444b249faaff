package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mahede182/appifyEcommerce/internal/app"
	"github.com/mahede182/appifyEcommerce/internal/clock"
	"github.com/mahede182/appifyEcommerce/internal/config"
	"github.com/mahede182/appifyEcommerce/internal/storage/postgres"
	transporthttp "github.com/mahede182/appifyEcommerce/internal/transport/http"
	"github.com/mahede182/appifyEcommerce/migrations"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	logger = logger.With(zap.String("service", cfg.ServiceName))

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := postgres.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	ledger := app.NewStockLedger(productRepo, logger)
	cartSvc := app.NewCartService(cartRepo, ledger)
	orderSvc := app.NewOrderService(orderRepo, cartRepo, productRepo, ledger, clock.NewSystem())
	summarySvc := app.NewSummaryService(cartRepo)
	catalogSvc := app.NewCatalogService(productRepo)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Cart:        cartSvc,
		Summary:     summarySvc,
		Orders:      orderSvc,
		OrderReads:  orderSvc,
		Catalog:     catalogSvc,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("addr", cfg.HTTPAddr))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
