package tracer

import "os"

// Config holds tracing settings.
type Config struct {
	// ServiceName identifies this service in trace backends.
	ServiceName string

	// AppEnv tags spans with the deployment environment.
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. The exporter endpoint
	// comes from the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool
}

// NewConfig reads tracing settings from environment variables:
//
//	SERVICE_NAME           defaults to "vito-mcp"
//	APP_ENV                defaults to "development"
//	TRACING_ENABLE_EXPORT  "true" enables the OTLP exporter
func NewConfig() Config {
	cfg := Config{
		ServiceName:  os.Getenv("SERVICE_NAME"),
		AppEnv:       os.Getenv("APP_ENV"),
		EnableExport: os.Getenv("TRACING_ENABLE_EXPORT") == "true",
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "vito-mcp"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	return cfg
}
