package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	financeapp "github.com/bizsuite/backend/internal/application/finance"
	inventoryapp "github.com/bizsuite/backend/internal/application/inventory"
	tradeapp "github.com/bizsuite/backend/internal/application/trade"
	"github.com/bizsuite/backend/internal/infrastructure/cache"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/infrastructure/event"
	"github.com/bizsuite/backend/internal/infrastructure/logger"
	"github.com/bizsuite/backend/internal/infrastructure/persistence"
	"github.com/bizsuite/backend/internal/interfaces/http/handler"
	"github.com/bizsuite/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting bizsuite backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories (non-transactional reads; writes go through scopes)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Transaction scopes
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	financeScope := persistence.NewGormFinanceTransactionScope(db.DB)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(inventoryapp.NewReorderAlertHandler(log))

	// Idempotency store for order submission
	idempotencyStore := cache.NewIdempotencyStore(cfg, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	taxRate, err := cfg.Order.TaxRateDecimal()
	if err != nil {
		log.Fatal("Invalid order configuration", zap.Error(err))
	}
	policy := tradeapp.OrderPolicy{
		TaxRate:          taxRate,
		AllowOverpayment: cfg.Order.AllowOverpayment,
		MaxRetries:       cfg.Order.MaxRetries,
		IdempotencyTTL:   cfg.Order.IdempotencyTTL,
	}

	// Application services
	orderService := tradeapp.NewOrderService(tradeScope, orderRepo, productRepo, policy, log)
	orderService.SetEventPublisher(eventBus)
	orderService.SetIdempotencyStore(idempotencyStore)

	ledgerService := inventoryapp.NewLedgerService(inventoryScope, stockRepo)
	ledgerService.SetEventPublisher(eventBus)

	paymentService := financeapp.NewPaymentService(financeScope, paymentRepo, cfg.Order.AllowOverpayment)
	paymentService.SetEventPublisher(eventBus)

	engine := router.New(cfg, log, router.Handlers{
		Order:   handler.NewOrderHandler(orderService),
		Payment: handler.NewPaymentHandler(paymentService),
		Stock:   handler.NewStockHandler(ledgerService),
		Health:  handler.NewHealthHandler(db),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
