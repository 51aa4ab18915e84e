package database

import (
	"fmt"
	"os"

	"github.com/hadv/vito-mcp/internal/chroma"
	"github.com/hadv/vito-mcp/internal/pgvector"
	"github.com/hadv/vito-mcp/internal/qdrant"
)

// Backend type identifiers, as accepted in DB_TYPE.
const (
	TypeQdrant   = "qdrant"
	TypeChroma   = "chroma"
	TypePgvector = "pgvector"
)

// Config selects and configures the vector database backend.
// Use NewConfig to read it from the environment, or one of the helper
// functions (QdrantConfig, ChromaConfig, PgvectorConfig) to build it in
// code.
type Config struct {
	// Type is the backend type ("qdrant", "chroma" or "pgvector").
	Type string

	// Collection is the name of the collection (or table) all knowledge
	// operations go to.
	Collection string

	// Qdrant configuration (used when Type = "qdrant")
	Qdrant *qdrant.Config

	// Chroma configuration (used when Type = "chroma")
	Chroma *chroma.Config

	// Pgvector configuration (used when Type = "pgvector")
	Pgvector *pgvector.Config
}

// NewConfig reads the backend selection from the environment:
//
//	DB_TYPE          backend type, defaults to "qdrant"
//	COLLECTION_NAME  collection name, defaults to "domain_knowledge"
//
// plus the selected backend's own variables (see the backend packages).
func NewConfig() *Config {
	cfg := &Config{
		Type:       getEnv("DB_TYPE", TypeQdrant),
		Collection: getEnv("COLLECTION_NAME", "domain_knowledge"),
	}

	switch cfg.Type {
	case TypeQdrant:
		cfg.Qdrant = qdrant.NewConfig()
	case TypeChroma:
		cfg.Chroma = chroma.NewConfig()
	case TypePgvector:
		cfg.Pgvector = pgvector.NewConfig()
	}

	return cfg
}

// QdrantConfig creates a Config for the Qdrant backend.
func QdrantConfig(collection string, cfg qdrant.Config) *Config {
	return &Config{Type: TypeQdrant, Collection: collection, Qdrant: &cfg}
}

// ChromaConfig creates a Config for the Chroma backend.
func ChromaConfig(collection string, cfg chroma.Config) *Config {
	return &Config{Type: TypeChroma, Collection: collection, Chroma: &cfg}
}

// PgvectorConfig creates a Config for the PostgreSQL/pgvector backend.
func PgvectorConfig(collection string, cfg pgvector.Config) *Config {
	return &Config{Type: TypePgvector, Collection: collection, Pgvector: &cfg}
}

// Validate checks the backend selection.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("database: collection name cannot be empty")
	}
	switch c.Type {
	case TypeQdrant:
		if c.Qdrant == nil {
			return fmt.Errorf("database: qdrant config is required when type=qdrant")
		}
	case TypeChroma:
		if c.Chroma == nil {
			return fmt.Errorf("database: chroma config is required when type=chroma")
		}
	case TypePgvector:
		if c.Pgvector == nil {
			return fmt.Errorf("database: pgvector config is required when type=pgvector")
		}
	default:
		return fmt.Errorf("database: unsupported type %q (must be %q, %q or %q)",
			c.Type, TypeQdrant, TypeChroma, TypePgvector)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
