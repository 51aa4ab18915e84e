package qdrant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hadv/vito-mcp/internal/logger"
	"github.com/hadv/vito-mcp/internal/vectordb"
)

// startQdrant starts a disposable Qdrant container and returns a connected
// adapter.
func startQdrant(t *testing.T) *Adapter {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "qdrant/qdrant:v1.11.0",
			ExposedPorts: []string{"6334/tcp"},
			Env: map[string]string{
				"QDRANT__SERVICE__GRPC_PORT": "6334",
			},
			WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "6334")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Endpoint = host
	cfg.Port = mappedPort.Int()

	var client *QdrantClient
	// gRPC may need a moment after the port opens.
	require.Eventually(t, func() bool {
		client, err = NewQdrantClient(cfg, logger.NewNop())
		return err == nil
	}, 30*time.Second, time.Second)

	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewAdapter(client, logger.NewNop())
}

func TestQdrantBackendIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	adapter := startQdrant(t)
	ctx := context.Background()
	collection := fmt.Sprintf("it_%s", uuid.NewString()[:8])

	require.NoError(t, adapter.EnsureCollection(ctx, collection, 4))
	// Second call is a no-op.
	require.NoError(t, adapter.EnsureCollection(ctx, collection, 4))

	docs := []vectordb.Document{
		{
			ID:     uuid.NewString(),
			Text:   "gophers are friendly",
			Vector: []float32{1, 0, 0, 0},
			Metadata: map[string]any{
				vectordb.KeySource: "golang",
			},
		},
		{
			ID:     uuid.NewString(),
			Text:   "rust has a borrow checker",
			Vector: []float32{0, 1, 0, 0},
			Metadata: map[string]any{
				vectordb.KeySource: "rust",
			},
		},
	}
	for _, doc := range docs {
		require.NoError(t, adapter.Store(ctx, collection, doc))
	}

	results, err := adapter.Search(ctx, collection, vectordb.SearchRequest{
		Query:  "tell me about gophers",
		Vector: []float32{1, 0, 0, 0},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "gophers are friendly", results[0].Text)
	assert.Equal(t, "golang", results[0].Source())
	assert.InDelta(t, 1.0, results[0].Score(), 1e-3)
	assert.Greater(t, results[0].Score(), results[1].Score())

	// Threshold cuts off the dissimilar entry.
	results, err = adapter.Search(ctx, collection, vectordb.SearchRequest{
		Query:          "tell me about gophers",
		Vector:         []float32{1, 0, 0, 0},
		Limit:          10,
		ScoreThreshold: 0.9,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "golang", results[0].Source())

	// Same id upserts rather than duplicates.
	updated := docs[0]
	updated.Text = "gophers are very friendly"
	require.NoError(t, adapter.Store(ctx, collection, updated))

	results, err = adapter.Search(ctx, collection, vectordb.SearchRequest{
		Query:  "gophers",
		Vector: []float32{1, 0, 0, 0},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "gophers are very friendly", results[0].Text)
}

func TestQdrantSearchEmptyCollectionIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	adapter := startQdrant(t)
	ctx := context.Background()
	collection := fmt.Sprintf("it_%s", uuid.NewString()[:8])

	require.NoError(t, adapter.EnsureCollection(ctx, collection, 4))

	results, err := adapter.Search(ctx, collection, vectordb.SearchRequest{
		Query:  "anything",
		Vector: []float32{1, 0, 0, 0},
		Limit:  5,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
