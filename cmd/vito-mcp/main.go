// Command vito-mcp runs the MCP knowledge-base server on stdio.
//
// Configuration comes from the environment (optionally a .env file); see
// the internal package docs for the variables each component reads. The
// process exits when stdin closes.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/database"
	"github.com/hadv/vito-mcp/internal/embcache"
	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/logger"
	"github.com/hadv/vito-mcp/internal/mcp"
	"github.com/hadv/vito-mcp/internal/metrics"
	"github.com/hadv/vito-mcp/internal/tracer"
)

func main() {
	// A missing .env file is fine, the environment may be set directly.
	_ = godotenv.Load()

	opts := []fx.Option{
		logger.FXModule,
		fx.Provide(
			func(l *logger.Logger) database.Logger { return l },
			func(l *logger.Logger) metrics.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(l *logger.Logger) mcp.Logger { return l },
		),
		tracer.FXModule,
		metrics.FXModule,
		embedding.FXModule,
		database.FXModule,
		mcp.FXModule,
	}

	if os.Getenv("REDIS_ADDR") != "" {
		opts = append(opts,
			fx.Provide(func(l *logger.Logger) embcache.Logger { return l }),
			embcache.FXModule,
			fx.Decorate(embcache.WrapProvider),
		)
	}

	opts = append(opts, fx.Invoke(runServer))

	fx.New(opts...).Run()
}

// runServer starts the stdio loop and shuts the app down when the client
// disconnects.
func runServer(lc fx.Lifecycle, server *mcp.Server, shutdowner fx.Shutdowner, log *logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Run(ctx); err != nil && ctx.Err() == nil {
					log.Error("MCP server stopped", err)
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
