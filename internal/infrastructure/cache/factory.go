package cache

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates the idempotency store selected by
// configuration. The redis backend falls back to the in-memory store when
// Redis is unreachable, so a cache outage degrades duplicate detection to
// per-instance instead of blocking order intake.
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.Cache.IdempotencyBackend == "memory" {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
			"duplicate submissions are only detected per instance",
			zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
	return store
}
