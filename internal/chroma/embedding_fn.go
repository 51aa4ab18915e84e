package chroma

import (
	"context"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"

	"github.com/hadv/vito-mcp/internal/embedding"
)

// embeddingFunction bridges the application's embedding client into the
// embedding-function abstraction the Chroma store expects. Chroma computes
// embeddings itself on add, so routing it through the same client keeps one
// model (and one dimensionality) across both write paths.
type embeddingFunction struct {
	client *embedding.Client
}

var _ embeddings.EmbeddingFunction = (*embeddingFunction)(nil)

// NewEmbeddingFunction wraps the embedding client for use by Chroma.
func NewEmbeddingFunction(client *embedding.Client) embeddings.EmbeddingFunction {
	return &embeddingFunction{client: client}
}

func (f *embeddingFunction) EmbedDocuments(ctx context.Context, documents []string) ([]embeddings.Embedding, error) {
	vectors, err := f.client.CreateEmbeddings(ctx, documents...)
	if err != nil {
		return nil, err
	}
	out := make([]embeddings.Embedding, len(vectors))
	for i, v := range vectors {
		out[i] = embeddings.NewEmbeddingFromFloat32(v)
	}
	return out, nil
}

func (f *embeddingFunction) EmbedQuery(ctx context.Context, document string) (embeddings.Embedding, error) {
	vector, err := f.client.CreateEmbedding(ctx, document)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbeddingFromFloat32(vector), nil
}
