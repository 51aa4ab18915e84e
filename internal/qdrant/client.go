package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Logger is the logging surface this package needs. The application's
// logger wrapper satisfies it; tests pass a no-op.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// QdrantClient wraps the official Qdrant Go client. The gRPC connection is
// lightweight, so construction performs an immediate health check to fail
// fast if the service is unreachable.
type QdrantClient struct {
	api    *qdrant.Client
	cfg    *Config
	logger Logger
}

// NewQdrantClient constructs a client and validates connectivity.
func NewQdrantClient(cfg *Config, logger Logger) (*QdrantClient, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	qc := &QdrantClient{
		api:    api,
		cfg:    cfg,
		logger: logger,
	}

	if err := qc.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant: health check failed: %w", err)
	}

	logger.Info("Qdrant client connected", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})
	return qc, nil
}

// healthCheck verifies availability of the Qdrant service. Lightweight and
// fast; used during startup and readiness probes.
func (c *QdrantClient) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("qdrant: client not initialized")
	}

	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	c.logger.Debug("Qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.Title,
		"version": resp.Version,
	})
	return nil
}

// Client returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close gracefully shuts down the gRPC connection.
func (c *QdrantClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}
