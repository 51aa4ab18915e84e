package chroma

import (
	"context"
	"fmt"
	"sync"
	"time"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// ChromaClient wraps the chroma-go HTTP client and caches collection
// handles. Handles are bound to the embedding function at get-or-create
// time, so the store can delegate embedding computation on add.
type ChromaClient struct {
	api chroma.Client
	ef  embeddings.EmbeddingFunction

	mu          sync.RWMutex
	collections map[string]chroma.Collection

	logger Logger
}

// NewChromaClient constructs a client and validates connectivity with a
// heartbeat.
func NewChromaClient(cfg *Config, ef embeddings.EmbeddingFunction, logger Logger) (*ChromaClient, error) {
	api, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("chroma: failed to initialize client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Heartbeat(ctx); err != nil {
		return nil, fmt.Errorf("chroma: heartbeat failed: %w", err)
	}

	logger.Info("Chroma client connected", nil, map[string]interface{}{
		"url": cfg.URL,
	})

	return &ChromaClient{
		api:         api,
		ef:          ef,
		collections: make(map[string]chroma.Collection),
		logger:      logger,
	}, nil
}

// collection returns the cached handle for name, or fetches one bound to
// the embedding function. EnsureCollection must have run first.
func (c *ChromaClient) collection(ctx context.Context, name string) (chroma.Collection, error) {
	c.mu.RLock()
	col, ok := c.collections[name]
	c.mu.RUnlock()
	if ok {
		return col, nil
	}

	col, err := c.api.GetOrCreateCollection(ctx, name, chroma.WithEmbeddingFunctionCreate(c.ef))
	if err != nil {
		return nil, fmt.Errorf("chroma: failed to get collection %q: %w", name, err)
	}

	c.mu.Lock()
	c.collections[name] = col
	c.mu.Unlock()
	return col, nil
}

// Close releases the underlying HTTP client resources.
func (c *ChromaClient) Close() error {
	return c.api.Close()
}
