package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/erp/addresssync/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// NewIdempotencyStore picks the store for the configured backend. The redis
// backend needs a client; without one it falls back to memory with a warning.
func NewIdempotencyStore(cfg config.EventConfig, client *redis.Client, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.IdempotencyBackend == "redis" {
		if client != nil {
			logger.Info("using Redis idempotency store")
			return NewRedisIdempotencyStore(client, "")
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store; " +
			"redeliveries across instances will not be detected")
	}
	return NewInMemoryIdempotencyStore()
}
