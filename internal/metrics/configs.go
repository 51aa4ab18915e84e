package metrics

import "os"

// Config holds settings for the Prometheus metrics server.
type Config struct {
	// Address is the listen address of the /metrics endpoint.
	Address string

	// ServiceName is attached as a constant "service" label to every
	// metric.
	ServiceName string

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	EnableDefaultCollectors bool
}

// NewConfig reads metrics settings from environment variables:
//
//	METRICS_ADDRESS  listen address, defaults to ":9090"
//	SERVICE_NAME     service label, defaults to "vito-mcp"
//	METRICS_ENABLE_DEFAULT_COLLECTORS  "false" disables runtime collectors
func NewConfig() Config {
	cfg := Config{
		Address:                 os.Getenv("METRICS_ADDRESS"),
		ServiceName:             os.Getenv("SERVICE_NAME"),
		EnableDefaultCollectors: os.Getenv("METRICS_ENABLE_DEFAULT_COLLECTORS") != "false",
	}
	if cfg.Address == "" {
		cfg.Address = ":9090"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "vito-mcp"
	}
	return cfg
}
