package router

import (
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/infrastructure/logger"
	"github.com/bizsuite/backend/internal/interfaces/http/handler"
	"github.com/bizsuite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups everything the router wires up
type Handlers struct {
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
	Stock   *handler.StockHandler
	Health  *handler.HealthHandler
}

// New builds the gin engine with middleware and all API routes
func New(cfg *config.Config, log *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
	)

	engine.GET("/healthz", handlers.Health.Check)

	api := engine.Group("/api/v1")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", handlers.Order.Create)
			orders.POST("/preview", handlers.Order.Preview)
			orders.POST("/:id/cancel", handlers.Order.Cancel)
			orders.GET("", handlers.Order.List)
			orders.GET("/:id", handlers.Order.Get)
			orders.GET("/:id/payments", handlers.Payment.ListByOrder)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", handlers.Payment.Record)
			payments.GET("/:id", handlers.Payment.Get)
		}

		stock := api.Group("/stock")
		{
			stock.POST("/adjust", handlers.Stock.Adjust)
			stock.POST("/delta", handlers.Stock.Delta)
			stock.GET("/:productId", handlers.Stock.Get)
			stock.GET("/:productId/movements", handlers.Stock.Movements)
		}
	}

	return engine
}
