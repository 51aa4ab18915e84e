package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	vectors [][]float32
	err     error
	texts   []string
}

func (p *stubProvider) Create(_ context.Context, texts ...string) ([][]float32, error) {
	p.texts = texts
	if p.err != nil {
		return nil, p.err
	}
	return p.vectors, nil
}

func TestCreateEmbedding(t *testing.T) {
	provider := &stubProvider{vectors: [][]float32{{0.1, 0.2}}}
	client := NewClientWithProvider(provider, 2)

	vec, err := client.CreateEmbedding(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
	assert.Equal(t, []string{"hello"}, provider.texts)
}

func TestCreateEmbeddingsRejectsEmptyInput(t *testing.T) {
	client := NewClientWithProvider(&stubProvider{}, 2)
	_, err := client.CreateEmbeddings(context.Background())
	assert.Error(t, err)
}

func TestCreateEmbeddingsEnforcesDimensions(t *testing.T) {
	provider := &stubProvider{vectors: [][]float32{{0.1, 0.2, 0.3}}}
	client := NewClientWithProvider(provider, 2)

	_, err := client.CreateEmbeddings(context.Background(), "hello")
	assert.ErrorContains(t, err, "dimension")
}

func TestCreateEmbeddingsEnforcesCount(t *testing.T) {
	provider := &stubProvider{vectors: [][]float32{{0.1, 0.2}}}
	client := NewClientWithProvider(provider, 2)

	_, err := client.CreateEmbeddings(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "1 vectors for 2 texts")
}

func TestCreateEmbeddingsPropagatesProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("inference down")}
	client := NewClientWithProvider(provider, 2)

	_, err := client.CreateEmbeddings(context.Background(), "hello")
	assert.ErrorContains(t, err, "inference down")
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(&Config{Model: "m", Dimensions: 3})
	assert.Error(t, err)

	_, err = NewClient(&Config{Endpoint: "http://localhost", Model: "m", Dimensions: 0})
	assert.Error(t, err)
}
