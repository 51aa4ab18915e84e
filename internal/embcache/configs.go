package embcache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const keyPrefix = "vito:emb_cache:"

// Config holds Redis settings for the embedding cache.
type Config struct {
	// Addr is the Redis host:port. An empty value disables the cache.
	Addr string

	// Password authenticates against Redis, empty for none.
	Password string

	// DB is the Redis database number.
	DB int

	// TTL is how long cached embeddings live. Zero means no expiry.
	TTL time.Duration
}

// NewConfig reads cache settings from environment variables:
//
//	REDIS_ADDR           host:port, empty disables the cache
//	REDIS_PASSWORD       optional
//	REDIS_DB             optional, defaults to 0
//	EMBEDDING_CACHE_TTL  Go duration, defaults to 24h
func NewConfig() (*Config, error) {
	cfg := &Config{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      24 * time.Hour,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("embcache: invalid REDIS_DB %q: %w", v, err)
		}
		cfg.DB = db
	}

	if v := os.Getenv("EMBEDDING_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("embcache: invalid EMBEDDING_CACHE_TTL %q: %w", v, err)
		}
		cfg.TTL = ttl
	}

	return cfg, nil
}
