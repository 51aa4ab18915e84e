package qdrant

import (
	"context"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// payloadKeyEmbeddingSource marks entries whose vector was computed outside
// the store (by the embedding client), as opposed to backends that embed
// internally.
const payloadKeyEmbeddingSource = "embedding_source"

// Adapter implements vectordb.Backend on top of a QdrantClient.
//
// Qdrant natively returns cosine similarity, so scores pass through
// unchanged; the score threshold is enforced server-side.
type Adapter struct {
	client *QdrantClient
	logger Logger
}

var _ vectordb.Backend = (*Adapter)(nil)

// NewAdapter creates a vectordb.Backend backed by Qdrant.
func NewAdapter(client *QdrantClient, logger Logger) *Adapter {
	return &Adapter{client: client, logger: logger}
}

// EnsureCollection verifies the collection exists and creates it with the
// given vector size and cosine distance if missing. Safe to call multiple
// times; if the collection already exists the function exits early.
func (a *Adapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	collections, err := a.client.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		a.logger.Debug("Collection already exists", nil, map[string]interface{}{
			"collection": name,
		})
		return nil
	}

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := a.client.api.CreateCollection(ctx, req); err != nil {
		a.logger.Error("Failed to create collection", err, map[string]interface{}{
			"collection": name,
		})
		return fmt.Errorf("qdrant: failed to create collection %q: %w", name, err)
	}

	a.logger.Info("Created collection", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": vectorSize,
	})
	return nil
}

// Store upserts a single point keyed by the document's identifier. The
// payload carries the raw text alongside the stamped metadata, so search
// results can be reconstructed without a second lookup.
func (a *Adapter) Store(ctx context.Context, collection string, doc vectordb.Document) error {
	if err := vectordb.ValidateDocument(collection, doc); err != nil {
		return err
	}
	if len(doc.Vector) == 0 {
		return fmt.Errorf("qdrant: document vector cannot be empty")
	}

	payload := buildPayload(doc)

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(doc.ID),
				Vectors: qdrant.NewVectors(doc.Vector...),
				Payload: qdrant.NewValueMap(payload),
			},
		},
		Wait: &wait,
	}

	if _, err := a.client.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("qdrant: upsert failed: %w", err)
	}

	a.logger.Debug("Stored point", nil, map[string]interface{}{
		"collection": collection,
		"id":         doc.ID,
	})
	return nil
}

// Search submits the query vector with the similarity cutoff and payload
// inclusion, and maps each scored point into the shared result shape.
func (a *Adapter) Search(ctx context.Context, collection string, req vectordb.SearchRequest) ([]vectordb.QueryResult, error) {
	if err := vectordb.ValidateSearchRequest(collection, req); err != nil {
		return nil, err
	}

	limit := uint64(req.Limit)
	query := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if req.ScoreThreshold > 0 {
		threshold := req.ScoreThreshold
		query.ScoreThreshold = &threshold
	}

	resp, err := a.client.api.Query(ctx, query)
	if err != nil {
		a.logger.Error("Search failed", err, map[string]interface{}{
			"collection": collection,
		})
		return nil, fmt.Errorf("qdrant: search failed: %w", err)
	}

	results := make([]vectordb.QueryResult, 0, len(resp))
	for _, point := range resp {
		results = append(results, scoredPointToResult(point))
	}

	a.logger.Debug("Search returned results", nil, map[string]interface{}{
		"collection": collection,
		"count":      len(results),
	})
	return results, nil
}
