package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds settings for the embedding provider.
//
// EMBEDDING_ENDPOINT must point to the root of an OpenAI-compatible
// inference service (no /embeddings appended); the provider appends the
// path itself.
type Config struct {
	Endpoint     string // base URL of the inference API
	APIKey       string // bearer token; empty for unauthenticated local servers
	Model        string // embedding model identifier
	Dimensions   int    // expected output dimensionality
	HTTPTimeoutS int    // HTTP timeout in seconds (default 30)
}

// NewConfig reads embedding settings from environment variables.
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	dimensions := 1536
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dimensions = n
		}
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		APIKey:       os.Getenv("EMBEDDING_API_KEY"),
		Model:        model,
		Dimensions:   dimensions,
		HTTPTimeoutS: timeout,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("embedding: EMBEDDING_DIMENSIONS must be positive")
	}
	return nil
}
