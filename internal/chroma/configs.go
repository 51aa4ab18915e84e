package chroma

import "os"

// Config holds connection settings for the Chroma collection store.
type Config struct {
	// URL is the base URL of the Chroma server, e.g. "http://localhost:8000".
	URL string
}

// DefaultConfig provides defaults for a local Chroma instance.
func DefaultConfig() *Config {
	return &Config{
		URL: "http://localhost:8000",
	}
}

// NewConfig reads Chroma settings from environment variables, falling back
// to defaults.
func NewConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CHROMA_URL"); v != "" {
		cfg.URL = v
	}
	return cfg
}
