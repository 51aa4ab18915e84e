package embcache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// NewRedisClient connects to Redis and verifies connectivity.
func NewRedisClient(cfg *Config, logger Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("embcache: missing REDIS_ADDR")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("embcache: ping redis: %w", err)
	}

	logger.Info("Redis embedding cache connected", nil, map[string]interface{}{
		"addr": cfg.Addr,
	})
	return client, nil
}
