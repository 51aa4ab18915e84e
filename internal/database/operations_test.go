package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/logger"
	"github.com/hadv/vito-mcp/internal/vectordb"
)

type fakeProvider struct {
	calls  int
	vector []float32
	err    error
}

func (p *fakeProvider) Create(_ context.Context, texts ...string) ([][]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = p.vector
	}
	return out, nil
}

type fakeBackend struct {
	ensureCalls int
	ensureSize  uint64
	ensureErr   error

	stored   []vectordb.Document
	storeErr error

	results    []vectordb.QueryResult
	searchErr  error
	lastSearch vectordb.SearchRequest

	selfEmbeds bool
}

func (b *fakeBackend) EnsureCollection(_ context.Context, name string, vectorSize uint64) error {
	b.ensureCalls++
	b.ensureSize = vectorSize
	return b.ensureErr
}

func (b *fakeBackend) Store(_ context.Context, _ string, doc vectordb.Document) error {
	if b.storeErr != nil {
		return b.storeErr
	}
	b.stored = append(b.stored, doc)
	return nil
}

func (b *fakeBackend) Search(_ context.Context, _ string, req vectordb.SearchRequest) ([]vectordb.QueryResult, error) {
	b.lastSearch = req
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	return b.results, nil
}

func (b *fakeBackend) EmbedsOnStore() bool {
	return b.selfEmbeds
}

func newTestService(t *testing.T, backend *fakeBackend, provider *fakeProvider) *Service {
	t.Helper()
	if provider.vector == nil {
		provider.vector = []float32{0.1, 0.2, 0.3}
	}
	cfg := &Config{Type: TypeQdrant, Collection: "knowledge"}
	embedder := embedding.NewClientWithProvider(provider, len(provider.vector))
	return NewService(cfg, backend, embedder, logger.NewNop())
}

func TestInitializeIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend, &fakeProvider{})

	require.NoError(t, svc.Initialize(context.Background()))
	require.NoError(t, svc.Initialize(context.Background()))

	assert.Equal(t, 1, backend.ensureCalls)
	assert.Equal(t, uint64(3), backend.ensureSize)
}

func TestInitializeFailureIsNotSticky(t *testing.T) {
	backend := &fakeBackend{ensureErr: errors.New("connection refused")}
	svc := newTestService(t, backend, &fakeProvider{})

	require.Error(t, svc.Initialize(context.Background()))

	backend.ensureErr = nil
	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, 2, backend.ensureCalls)
}

func TestOperationsRequireInitialize(t *testing.T) {
	svc := newTestService(t, &fakeBackend{}, &fakeProvider{})

	_, err := svc.StoreDomainKnowledge(context.Background(), "text", "domain", nil)
	assert.ErrorContains(t, err, "not initialized")

	_, err = svc.Search(context.Background(), "query", 5, 0)
	assert.ErrorContains(t, err, "not initialized")
}

func TestStoreDomainKnowledgeStampsMetadata(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	caller := map[string]any{"ticket": "ABC-123"}
	id, err := svc.StoreDomainKnowledge(context.Background(), "gophers are friendly", "golang", caller)
	require.NoError(t, err)

	require.Len(t, backend.stored, 1)
	doc := backend.stored[0]

	// The returned id is the id actually written.
	assert.Equal(t, doc.ID, id)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	assert.Equal(t, "golang", doc.Metadata[vectordb.KeySource])
	assert.Equal(t, "domain_knowledge", doc.Metadata[keyType])
	assert.Equal(t, 1, doc.Metadata[keyVersion])
	assert.NotEmpty(t, doc.Metadata[keyTimestamp])
	assert.Equal(t, "ABC-123", doc.Metadata["ticket"])

	// The caller's map is not mutated.
	assert.Equal(t, map[string]any{"ticket": "ABC-123"}, caller)
}

func TestStoreDomainKnowledgeWithoutCallerMetadata(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.StoreDomainKnowledge(context.Background(), "gophers are friendly", "golang", nil)
	require.NoError(t, err)

	require.Len(t, backend.stored, 1)
	meta := backend.stored[0].Metadata

	// Nothing beyond the stamped fields.
	require.Len(t, meta, 4)
	assert.Equal(t, "golang", meta[vectordb.KeySource])
	assert.Equal(t, "domain_knowledge", meta[keyType])
	assert.Equal(t, 1, meta[keyVersion])
	assert.NotEmpty(t, meta[keyTimestamp])
}

func TestStoreDomainKnowledgeStampsWinCollisions(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	caller := map[string]any{
		vectordb.KeySource: "spoofed",
		keyType:            "spoofed",
		keyVersion:         99,
		"ticket":           "ABC-123",
	}
	_, err := svc.StoreDomainKnowledge(context.Background(), "text", "golang", caller)
	require.NoError(t, err)

	meta := backend.stored[0].Metadata
	assert.Equal(t, "golang", meta[vectordb.KeySource])
	assert.Equal(t, "domain_knowledge", meta[keyType])
	assert.Equal(t, 1, meta[keyVersion])
	assert.Equal(t, "ABC-123", meta["ticket"])

	// The caller's map keeps its original values.
	assert.Equal(t, "spoofed", caller[vectordb.KeySource])
	assert.Equal(t, 99, caller[keyVersion])
}

func TestStoreDomainKnowledgeValidation(t *testing.T) {
	svc := newTestService(t, &fakeBackend{}, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.StoreDomainKnowledge(context.Background(), "", "domain", nil)
	assert.Error(t, err)

	_, err = svc.StoreDomainKnowledge(context.Background(), "text", "", nil)
	assert.Error(t, err)
}

func TestStoreEmbedsUnlessBackendDoes(t *testing.T) {
	backend := &fakeBackend{}
	provider := &fakeProvider{}
	svc := newTestService(t, backend, provider)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.StoreDomainKnowledge(context.Background(), "text", "domain", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.NotEmpty(t, backend.stored[0].Vector)

	selfEmbedding := &fakeBackend{selfEmbeds: true}
	provider2 := &fakeProvider{}
	svc2 := newTestService(t, selfEmbedding, provider2)
	require.NoError(t, svc2.Initialize(context.Background()))

	_, err = svc2.StoreDomainKnowledge(context.Background(), "text", "domain", nil)
	require.NoError(t, err)
	assert.Zero(t, provider2.calls)
	assert.Empty(t, selfEmbedding.stored[0].Vector)
}

func TestSearchEmbedsQueryOnce(t *testing.T) {
	backend := &fakeBackend{}
	provider := &fakeProvider{}
	svc := newTestService(t, backend, provider)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Search(context.Background(), "how do goroutines work", 5, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, provider.vector, backend.lastSearch.Vector)
	assert.Equal(t, "how do goroutines work", backend.lastSearch.Query)
	assert.Equal(t, 5, backend.lastSearch.Limit)
	assert.Equal(t, float32(0.5), backend.lastSearch.ScoreThreshold)
}

func TestSearchOrdersAndCapsResults(t *testing.T) {
	backend := &fakeBackend{
		results: []vectordb.QueryResult{
			{Text: "low", Metadata: map[string]any{vectordb.KeyScore: 0.2}},
			{Text: "high", Metadata: map[string]any{vectordb.KeyScore: 0.9}},
			{Text: "mid", Metadata: map[string]any{vectordb.KeyScore: 0.5}},
		},
	}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	results, err := svc.Search(context.Background(), "query", 2, 0)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "high", results[0].Text)
	assert.Equal(t, "mid", results[1].Text)
}

func TestSearchPropagatesBackendErrors(t *testing.T) {
	backend := &fakeBackend{searchErr: errors.New("backend down")}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	results, err := svc.Search(context.Background(), "query", 5, 0)
	assert.Nil(t, results)
	assert.ErrorContains(t, err, "backend down")
}

func TestSearchEmptyCollection(t *testing.T) {
	backend := &fakeBackend{results: []vectordb.QueryResult{}}
	svc := newTestService(t, backend, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	results, err := svc.Search(context.Background(), "query", 5, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchValidation(t *testing.T) {
	svc := newTestService(t, &fakeBackend{}, &fakeProvider{})
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Search(context.Background(), "", 5, 0)
	assert.Error(t, err)

	_, err = svc.Search(context.Background(), "query", 0, 0)
	assert.Error(t, err)
}

func TestSearchEmbeddingFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("inference unavailable")}
	provider.vector = []float32{0.1, 0.2, 0.3}
	svc := newTestService(t, &fakeBackend{}, provider)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Search(context.Background(), "query", 5, 0)
	assert.ErrorContains(t, err, "inference unavailable")
}
