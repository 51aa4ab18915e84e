package pgvector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// Adapter implements vectordb.Backend on PostgreSQL with the pgvector
// extension. Each collection maps to its own table with a vector(N) column
// and an HNSW cosine index.
//
// pgvector's <=> operator returns cosine distance; similarity is computed
// as 1 - distance inside the query, so the score leaves the database
// already normalized.
type Adapter struct {
	client *PgClient
	logger Logger
}

var _ vectordb.Backend = (*Adapter)(nil)

// NewAdapter creates a vectordb.Backend backed by PostgreSQL/pgvector.
func NewAdapter(client *PgClient, logger Logger) *Adapter {
	return &Adapter{client: client, logger: logger}
}

// EnsureCollection installs the extension and creates the collection table
// and index if missing. Everything here is IF NOT EXISTS, so repeat calls
// are no-ops.
func (a *Adapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	table, err := tableName(name)
	if err != nil {
		return err
	}

	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`, table, vectorSize),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`, table, table),
	}

	for _, m := range migrations {
		if _, err := a.client.db.ExecContext(ctx, m); err != nil {
			a.logger.Error("Failed to ensure collection", err, map[string]interface{}{
				"collection": name,
			})
			return fmt.Errorf("pgvector: ensure collection %q: %w", name, err)
		}
	}

	a.logger.Debug("Collection ready", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": vectorSize,
	})
	return nil
}

// Store upserts one row keyed by the document's identifier.
func (a *Adapter) Store(ctx context.Context, collection string, doc vectordb.Document) error {
	if err := vectordb.ValidateDocument(collection, doc); err != nil {
		return err
	}
	if len(doc.Vector) == 0 {
		return fmt.Errorf("pgvector: document vector cannot be empty")
	}

	table, err := tableName(collection)
	if err != nil {
		return err
	}

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("pgvector: marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, text, embedding, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata
	`, table)

	if _, err := a.client.db.ExecContext(ctx, query, doc.ID, doc.Text, formatVector(doc.Vector), metadata); err != nil {
		return fmt.Errorf("pgvector: upsert failed: %w", err)
	}

	a.logger.Debug("Stored row", nil, map[string]interface{}{
		"collection": collection,
		"id":         doc.ID,
	})
	return nil
}

// Search runs a nearest-neighbor query ordered by cosine distance, with
// the similarity cutoff applied in SQL for a positive threshold.
func (a *Adapter) Search(ctx context.Context, collection string, req vectordb.SearchRequest) ([]vectordb.QueryResult, error) {
	if err := vectordb.ValidateSearchRequest(collection, req); err != nil {
		return nil, err
	}

	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}

	query, args := searchQuery(table, req)
	rows, err := a.client.db.QueryContext(ctx, query, args...)
	if err != nil {
		a.logger.Error("Search failed", err, map[string]interface{}{
			"collection": collection,
		})
		return nil, fmt.Errorf("pgvector: query failed: %w", err)
	}
	defer rows.Close()

	results := make([]vectordb.QueryResult, 0, req.Limit)
	for rows.Next() {
		var text string
		var metadataBytes []byte
		var score float64
		if err := rows.Scan(&text, &metadataBytes, &score); err != nil {
			return nil, fmt.Errorf("pgvector: scan row: %w", err)
		}

		metadata := make(map[string]any)
		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
				return nil, fmt.Errorf("pgvector: decode metadata: %w", err)
			}
		}
		metadata[vectordb.KeyScore] = score

		results = append(results, vectordb.QueryResult{
			Text:     text,
			Metadata: metadata,
		})
	}

	return results, rows.Err()
}
