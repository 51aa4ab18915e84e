// Package tracer sets up OpenTelemetry tracing with an optional OTLP HTTP
// exporter and installs the provider globally.
package tracer
