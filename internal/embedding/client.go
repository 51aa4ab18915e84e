package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides provider details (inference endpoint, HTTP, auth) from the
// application layer and enforces the configured output dimensionality: the
// vector stores are created with a fixed vector size, and feeding them a
// vector of a different length is a hard failure at the backend, so the
// mismatch is caught here instead.
type Client struct {
	provider   Provider
	dimensions int
}

// NewClient constructs a Client from Config. It validates the config and
// internally constructs the inference provider. Application code should
// depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{provider: p, dimensions: cfg.Dimensions}, nil
}

// NewProvider constructs the inference provider from Config. Exposed so
// decorators (the Redis embedding cache) can be layered between the
// provider and the Client.
func NewProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}
	return p, nil
}

// NewClientWithProvider constructs a Client around an existing Provider.
// Used to layer decorators (caching) over the inference provider, and by
// tests to substitute fakes.
func NewClientWithProvider(p Provider, dimensions int) *Client {
	return &Client{provider: p, dimensions: dimensions}
}

// Dimensions returns the configured embedding dimensionality.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// CreateEmbedding generates a single embedding vector for the given text.
func (c *Client) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.CreateEmbeddings(ctx, text)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// CreateEmbeddings generates one embedding per input text, in input order.
func (c *Client) CreateEmbeddings(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: no texts provided")
	}

	vectors, err := c.provider.Create(ctx, texts...)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding: provider returned %d vectors for %d texts", len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != c.dimensions {
			return nil, fmt.Errorf("embedding: vector %d has dimension %d, expected %d", i, len(v), c.dimensions)
		}
	}

	return vectors, nil
}
