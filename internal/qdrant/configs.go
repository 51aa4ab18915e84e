package qdrant

import (
	"os"
	"strconv"
	"time"
)

// Config holds connection settings for the Qdrant client.
type Config struct {
	// Endpoint is the hostname of the Qdrant server, e.g. "localhost".
	Endpoint string

	// Port is the gRPC port of the Qdrant server. Defaults to 6334.
	Port int

	// APIKey is the optional authentication token for secured deployments.
	APIKey string

	// UseTLS enables transport security; required by Qdrant Cloud.
	UseTLS bool

	// Timeout is the maximum request duration before timing out.
	Timeout time.Duration

	// CheckCompatibility controls version compatibility checks between
	// client and server.
	CheckCompatibility bool
}

// DefaultConfig provides sensible defaults for a local Qdrant instance.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Timeout:            10 * time.Second,
		CheckCompatibility: false,
	}
}

// NewConfig reads Qdrant settings from environment variables, falling back
// to defaults.
func NewConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	cfg.APIKey = os.Getenv("QDRANT_API_KEY")
	if v := os.Getenv("QDRANT_USE_TLS"); v != "" {
		cfg.UseTLS, _ = strconv.ParseBool(v)
	}

	return cfg
}
