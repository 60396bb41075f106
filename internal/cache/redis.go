// Package cache provides the Redis client plus the key inventory for rate
// limiting and token revocation.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindhaven/internal/config"
	"mindhaven/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// errorCounterHook feeds failed Redis commands into the error metric.
// redis.Nil is a miss, not a failure.
type errorCounterHook struct{}

func (errorCounterHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorCounterHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorCounterHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Connect builds a Redis client from the configuration and verifies
// connectivity. It returns nil when Redis is misconfigured or unreachable;
// callers treat a nil client as "no cache", so rate limits fail open and
// token revocation checks are skipped.
func Connect(cfg *config.Config) *redis.Client {
	opts, err := clientOptions(cfg)
	if err != nil {
		middleware.Logger.Warn("invalid REDIS_URL, continuing without Redis",
			"url", cfg.RedisURL, "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	client.AddHook(errorCounterHook{})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unreachable, continuing without Redis",
			"addr", opts.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	middleware.Logger.Info("Redis connected", "addr", opts.Addr)
	return client
}

// clientOptions accepts either a full redis:// URL or a bare host:port
// address. The URL form carries its own credentials; the bare form takes
// them from the config.
func clientOptions(cfg *config.Config) (*redis.Options, error) {
	if strings.Contains(cfg.RedisURL, "://") {
		return redis.ParseURL(cfg.RedisURL)
	}
	return &redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
