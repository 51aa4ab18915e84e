package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/database"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// FXModule wires the Prometheus metrics server into Fx.
//
// It provides:
//   - Config             (NewConfig)
//   - *Metrics           (NewMetrics)
//   - database.Observer  (NewObserver)
//   - the embedding cache hit/miss counter, named "embedding_cache_total"
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewConfig,
		NewMetrics,
		fx.Annotate(NewObserver, fx.As(new(database.Observer))),
		fx.Annotate(
			func(m *Metrics) *prometheus.CounterVec { return m.EmbeddingCacheCounter() },
			fx.ResultTags(`name:"embedding_cache_total"`),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the /metrics server on startup and shuts
// it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, logger Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Metrics server failed", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return m.Server.Shutdown(ctx)
		},
	})
}
