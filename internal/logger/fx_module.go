package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the logger into an Fx application. It provides the Config
// reader and the Logger itself, and registers a shutdown hook that flushes
// buffered entries.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewConfig,
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application shutdown so
// no buffered entries are lost.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr can fail on some platforms; nothing to do about it.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
