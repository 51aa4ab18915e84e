package ingest

import (
	"context"

	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/database"
)

// FXModule wires the ingester into Fx. The Source is selected from Config:
// a local directory when INGEST_DIR is set, the object store otherwise.
var FXModule = fx.Module("ingest",
	fx.Provide(
		NewConfig,
		func(svc *database.Service) KnowledgeStore { return svc },
		NewSource,
		NewIngester,
	),
)

// NewSource builds the configured document source.
func NewSource(cfg *Config, logger Logger) (Source, error) {
	if cfg.Dir != "" {
		return NewDirSource(cfg.Dir)
	}
	return NewBucketSource(context.Background(), cfg.Minio, logger)
}
