package chroma

import (
	"context"
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// Adapter implements vectordb.Backend on top of a ChromaClient.
//
// Chroma natively returns cosine distance, converted to similarity at this
// boundary (see distanceToScore). Unlike the Qdrant adapter, the embedding
// for stored documents is computed inside the backend by the collection's
// embedding function, not passed in.
type Adapter struct {
	client *ChromaClient
	logger Logger
}

var (
	_ vectordb.Backend      = (*Adapter)(nil)
	_ vectordb.SelfEmbedder = (*Adapter)(nil)
)

// NewAdapter creates a vectordb.Backend backed by Chroma.
func NewAdapter(client *ChromaClient, logger Logger) *Adapter {
	return &Adapter{client: client, logger: logger}
}

// EmbedsOnStore reports that stored text is embedded by the collection's
// embedding function rather than taken from Document.Vector.
func (a *Adapter) EmbedsOnStore() bool {
	return true
}

// EnsureCollection lists collections and creates the named one bound to
// the configured embedding function if absent; otherwise it fetches the
// existing handle for later use. Idempotent.
//
// vectorSize is not sent to Chroma: the collection's dimensionality is set
// by the embedding function on first add, and the embedding client already
// enforces the configured dimensionality on its output.
func (a *Adapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	existing, err := a.client.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("chroma: failed to list collections: %w", err)
	}
	for _, col := range existing {
		if col.Name() == name {
			a.logger.Debug("Collection already exists", nil, map[string]interface{}{
				"collection": name,
			})
			// Re-fetch through the cache so the handle is bound to the
			// embedding function.
			_, err := a.client.collection(ctx, name)
			return err
		}
	}

	if _, err := a.client.collection(ctx, name); err != nil {
		a.logger.Error("Failed to create collection", err, map[string]interface{}{
			"collection": name,
		})
		return err
	}

	a.logger.Info("Created collection", nil, map[string]interface{}{
		"collection": name,
	})
	return nil
}

// Store adds one item with the document's identifier, raw text, and
// metadata. The embedding is computed by the collection's embedding
// function, not taken from doc.Vector.
func (a *Adapter) Store(ctx context.Context, collection string, doc vectordb.Document) error {
	if err := vectordb.ValidateDocument(collection, doc); err != nil {
		return err
	}

	col, err := a.client.collection(ctx, collection)
	if err != nil {
		return err
	}

	md, err := toDocumentMetadata(doc.Metadata)
	if err != nil {
		return fmt.Errorf("chroma: invalid metadata: %w", err)
	}

	err = col.Add(ctx,
		chroma.WithIDs(chroma.DocumentID(doc.ID)),
		chroma.WithTexts(doc.Text),
		chroma.WithMetadatas(md),
	)
	if err != nil {
		return fmt.Errorf("chroma: add failed: %w", err)
	}

	a.logger.Debug("Stored item", nil, map[string]interface{}{
		"collection": collection,
		"id":         doc.ID,
	})
	return nil
}

// Search queries with the precomputed query vector, requesting documents,
// metadatas, and distances. Chroma answers a batch of queries; with a
// single query vector only the first result group is populated.
func (a *Adapter) Search(ctx context.Context, collection string, req vectordb.SearchRequest) ([]vectordb.QueryResult, error) {
	if err := vectordb.ValidateSearchRequest(collection, req); err != nil {
		return nil, err
	}

	col, err := a.client.collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	resp, err := col.Query(ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(req.Vector)),
		chroma.WithNResults(req.Limit),
		chroma.WithIncludeQuery(chroma.IncludeDocuments, chroma.IncludeMetadatas, chroma.IncludeDistances),
	)
	if err != nil {
		a.logger.Error("Search failed", err, map[string]interface{}{
			"collection": collection,
		})
		return nil, fmt.Errorf("chroma: query failed: %w", err)
	}

	results := queryResponseToResults(resp)

	// Chroma has no server-side score cutoff; apply it here so the
	// threshold behaves the same on every backend.
	if req.ScoreThreshold > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.Score() >= float64(req.ScoreThreshold) {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	a.logger.Debug("Search returned results", nil, map[string]interface{}{
		"collection": collection,
		"count":      len(results),
	})
	return results, nil
}
