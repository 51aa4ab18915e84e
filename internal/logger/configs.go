package logger

import "os"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls how the zap logger is built.
type Config struct {
	// Level is one of "debug", "info", "warning", "error". Anything else
	// falls back to "info".
	Level string

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string
}

// NewConfig reads logger settings from the environment.
func NewConfig() Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = Info
	}
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "vito-mcp"
	}
	return Config{
		Level:       level,
		ServiceName: service,
	}
}
