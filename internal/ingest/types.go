package ingest

import "context"

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// File is one document to ingest: its origin path (or object key) and raw
// contents.
type File struct {
	Path string
	Data []byte
}

// Source yields files to ingest. Walk calls fn for every file and stops on
// the first error.
type Source interface {
	Walk(ctx context.Context, fn func(File) error) error
}

// KnowledgeStore is the consumer interface of the ingester, satisfied by
// *database.Service.
type KnowledgeStore interface {
	StoreDomainKnowledge(ctx context.Context, text, domain string, metadata map[string]any) (string, error)
}

// Stats summarizes one ingestion run.
type Stats struct {
	Files  int
	Chunks int
}
