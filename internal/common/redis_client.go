package common

import (
	"context"
	"time"

	"agora/backend/internal/config"
	"agora/backend/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared client used by the profile cache and token revocation
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	addr := cfg.RedisAddr()
	logging.Info("Initializing Redis client", "addr", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// The pool keeps retrying, so a cold Redis at boot is not fatal
		logging.Error("Failed to ping Redis", "addr", addr, "error", err)
		return client
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client
}
