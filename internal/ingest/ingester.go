package ingest

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Ingester chunks documents from a Source and stores each chunk in the
// knowledge base. Chunks carry the origin path and chunk index in their
// metadata.
type Ingester struct {
	store  KnowledgeStore
	cfg    *Config
	logger Logger
}

// NewIngester creates an Ingester over the knowledge store.
func NewIngester(store KnowledgeStore, cfg *Config, logger Logger) *Ingester {
	return &Ingester{store: store, cfg: cfg, logger: logger}
}

// Run walks the source and ingests every file, storing chunks with bounded
// concurrency. The walk stops on the first failure; already-submitted
// chunks finish first.
func (ing *Ingester) Run(ctx context.Context, src Source) (Stats, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.cfg.Workers)

	var files, chunks atomic.Int64

	walkErr := src.Walk(ctx, func(f File) error {
		text, err := extractText(f.Path, f.Data)
		if err != nil {
			return err
		}

		parts := ChunkText(text, ing.cfg.ChunkWords)
		if len(parts) == 0 {
			ing.logger.Warn("Skipping empty file", nil, map[string]interface{}{
				"path": f.Path,
			})
			return nil
		}

		files.Add(1)
		for i, part := range parts {
			part, i := part, i
			g.Go(func() error {
				metadata := map[string]any{
					"path":  f.Path,
					"chunk": i,
				}
				if _, err := ing.store.StoreDomainKnowledge(ctx, part, ing.cfg.Domain, metadata); err != nil {
					return fmt.Errorf("ingest: store chunk %d of %s: %w", i, f.Path, err)
				}
				chunks.Add(1)
				return nil
			})
		}

		ing.logger.Debug("Queued file", nil, map[string]interface{}{
			"path":   f.Path,
			"chunks": len(parts),
		})
		return nil
	})

	groupErr := g.Wait()
	stats := Stats{Files: int(files.Load()), Chunks: int(chunks.Load())}

	if walkErr != nil {
		return stats, walkErr
	}
	if groupErr != nil {
		return stats, groupErr
	}

	ing.logger.Info("Ingestion finished", nil, map[string]interface{}{
		"files":  stats.Files,
		"chunks": stats.Chunks,
	})
	return stats, nil
}
