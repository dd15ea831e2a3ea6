package redis

import (
	"context"
	"fmt"
	"scoutIO/pkg/config"
	"scoutIO/pkg/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects the session store. REDIS_URL wins over the
// host/port settings so managed instances with TLS and ACL users work
// without extra fields.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := clientOptions(cfg.Redis)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Redis connected", "addr", opts.Addr, "db", opts.DB, "session_ttl", cfg.Redis.SessionTTL)
	return client, nil
}

func clientOptions(cfg config.RedisConfig) (*redis.Options, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	// session reads and WATCH transactions are short; fail fast instead of
	// queueing behind a stalled connection
	opts.DialTimeout = pingTimeout
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	opts.PoolSize = 20
	opts.MinIdleConns = 2
	opts.PoolTimeout = 3 * time.Second

	return opts, nil
}

func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	return nil
}
