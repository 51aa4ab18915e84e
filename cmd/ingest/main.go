// Command ingest loads documents into the knowledge base and exits.
//
// It ingests either a local directory (INGEST_DIR) or an S3-compatible
// bucket (MINIO_*), chunking files and storing each chunk under the
// configured knowledge domain.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/database"
	"github.com/hadv/vito-mcp/internal/embcache"
	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/ingest"
	"github.com/hadv/vito-mcp/internal/logger"
	"github.com/hadv/vito-mcp/internal/tracer"
)

func main() {
	_ = godotenv.Load()

	opts := []fx.Option{
		logger.FXModule,
		fx.Provide(
			func(l *logger.Logger) database.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(l *logger.Logger) ingest.Logger { return l },
		),
		tracer.FXModule,
		embedding.FXModule,
		database.FXModule,
		ingest.FXModule,
	}

	if os.Getenv("REDIS_ADDR") != "" {
		opts = append(opts,
			fx.Provide(func(l *logger.Logger) embcache.Logger { return l }),
			embcache.FXModule,
			fx.Decorate(embcache.WrapProvider),
		)
	}

	opts = append(opts, fx.Invoke(runIngest))

	fx.New(opts...).Run()
}

// runIngest runs one ingestion pass in the background and shuts the app
// down when it completes.
func runIngest(lc fx.Lifecycle, ing *ingest.Ingester, src ingest.Source, shutdowner fx.Shutdowner, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				stats, err := ing.Run(context.Background(), src)
				if err != nil {
					log.Error("Ingestion failed", err, map[string]interface{}{
						"files":  stats.Files,
						"chunks": stats.Chunks,
					})
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
	})
}
