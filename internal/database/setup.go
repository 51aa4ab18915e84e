package database

import (
	"fmt"

	"github.com/hadv/vito-mcp/internal/chroma"
	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/pgvector"
	"github.com/hadv/vito-mcp/internal/qdrant"
	"github.com/hadv/vito-mcp/internal/vectordb"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// NewBackend constructs the vectordb.Backend selected by cfg.Type, along
// with a close function releasing the backend client's resources.
//
// The embedding client is needed here because the Chroma backend binds an
// embedding function to its collections at creation time.
func NewBackend(cfg *Config, embedder *embedding.Client, logger Logger) (vectordb.Backend, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Type {
	case TypeQdrant:
		client, err := qdrant.NewQdrantClient(cfg.Qdrant, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: qdrant setup: %w", err)
		}
		return qdrant.NewAdapter(client, logger), client.Close, nil

	case TypeChroma:
		ef := chroma.NewEmbeddingFunction(embedder)
		client, err := chroma.NewChromaClient(cfg.Chroma, ef, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: chroma setup: %w", err)
		}
		return chroma.NewAdapter(client, logger), client.Close, nil

	case TypePgvector:
		client, err := pgvector.NewPgClient(cfg.Pgvector, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: pgvector setup: %w", err)
		}
		return pgvector.NewAdapter(client, logger), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("database: unsupported type %q", cfg.Type)
	}
}
