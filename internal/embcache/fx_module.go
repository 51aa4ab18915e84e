package embcache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/embedding"
)

// FXModule wires the Redis client for the embedding cache into Fx. Add it
// together with fx.Decorate(WrapProvider) to put the cache in front of the
// embedding provider:
//
//	app := fx.New(
//	    embedding.FXModule,
//	    embcache.FXModule,
//	    fx.Decorate(embcache.WrapProvider),
//	    ...
//	)
var FXModule = fx.Module("embcache",
	fx.Provide(
		NewConfig,
		NewRedisClient,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// WrapParams groups the dependencies of the cache decorator. The counter
// is optional; without one the cache records no metrics.
type WrapParams struct {
	fx.In

	Inner      embedding.Provider
	Redis      *redis.Client
	Config     *Config
	Logger     Logger
	CacheTotal *prometheus.CounterVec `name:"embedding_cache_total" optional:"true"`
}

// WrapProvider decorates the embedding provider with the Redis cache.
func WrapProvider(params WrapParams) embedding.Provider {
	return New(params.Inner, params.Redis, params.Config.TTL, params.CacheTotal, params.Logger)
}

// RegisterRedisLifecycle closes the Redis connection on shutdown.
func RegisterRedisLifecycle(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
