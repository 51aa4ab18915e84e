package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/vectordb"
)

const tracerName = "github.com/hadv/vito-mcp/internal/database"

// Metadata fields stamped onto every stored knowledge entry.
const (
	keyTimestamp = "timestamp"
	keyType      = "type"
	keyVersion   = "version"

	entryType    = "domain_knowledge"
	entryVersion = 1
)

// Observer receives timing and outcome of knowledge operations. The
// metrics package provides a Prometheus implementation; the zero value of
// the service uses a no-op.
type Observer interface {
	ObserveStore(backend string, duration time.Duration, err error)
	ObserveSearch(backend string, duration time.Duration, hits int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStore(string, time.Duration, error)       {}
func (nopObserver) ObserveSearch(string, time.Duration, int, error) {}

// Service is the knowledge-base façade. It owns the collection name,
// generates embeddings exactly once per operation, stamps metadata on
// writes, and delegates vector operations to the configured backend.
type Service struct {
	backend    vectordb.Backend
	embedder   *embedding.Client
	observer   Observer
	logger     Logger
	dbType     string
	collection string

	mu          sync.RWMutex
	initialized bool
}

// NewService creates the façade over an already-constructed backend.
func NewService(cfg *Config, backend vectordb.Backend, embedder *embedding.Client, logger Logger) *Service {
	return &Service{
		backend:    backend,
		embedder:   embedder,
		observer:   nopObserver{},
		logger:     logger,
		dbType:     cfg.Type,
		collection: cfg.Collection,
	}
}

// SetObserver installs a metrics observer. Must be called before the
// service is used concurrently.
func (s *Service) SetObserver(o Observer) {
	if o != nil {
		s.observer = o
	}
}

// DBType returns the configured backend type ("qdrant", "chroma" or
// "pgvector").
func (s *Service) DBType() string {
	return s.dbType
}

// Collection returns the collection name all operations target.
func (s *Service) Collection() string {
	return s.collection
}

// Initialize ensures the knowledge collection exists with the embedding
// client's dimensionality. Idempotent; repeat calls after a success are
// no-ops.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.backend.EnsureCollection(ctx, s.collection, uint64(s.embedder.Dimensions())); err != nil {
		return fmt.Errorf("database: initialize %s backend: %w", s.dbType, err)
	}

	s.initialized = true
	s.logger.Info("Knowledge base initialized", nil, map[string]interface{}{
		"db_type":     s.dbType,
		"collection":  s.collection,
		"vector_size": s.embedder.Dimensions(),
	})
	return nil
}

// StoreDomainKnowledge stores one piece of text under a knowledge domain
// and returns the identifier of the entry actually written.
//
// The entry's metadata is the caller's map (which is not modified) plus
// the stamped fields: source (the domain), timestamp (RFC 3339 UTC),
// type ("domain_knowledge") and version (1). Stamped fields win on key
// collision.
func (s *Service) StoreDomainKnowledge(ctx context.Context, text, domain string, metadata map[string]any) (string, error) {
	if err := s.requireInitialized(); err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("database: text cannot be empty")
	}
	if domain == "" {
		return "", fmt.Errorf("database: domain cannot be empty")
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "database.StoreDomainKnowledge")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.type", s.dbType),
		attribute.String("db.collection", s.collection),
		attribute.String("knowledge.domain", domain),
	)

	start := time.Now()
	id, err := s.store(ctx, text, domain, metadata)
	s.observer.ObserveStore(s.dbType, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Failed to store domain knowledge", err, map[string]interface{}{
			"domain": domain,
		})
		return "", err
	}

	s.logger.Debug("Stored domain knowledge", nil, map[string]interface{}{
		"id":     id,
		"domain": domain,
	})
	return id, nil
}

func (s *Service) store(ctx context.Context, text, domain string, metadata map[string]any) (string, error) {
	doc := vectordb.Document{
		ID:       uuid.NewString(),
		Text:     text,
		Metadata: stampMetadata(metadata, domain),
	}

	if !embedsOnStore(s.backend) {
		vector, err := s.embedder.CreateEmbedding(ctx, text)
		if err != nil {
			return "", fmt.Errorf("database: embed text: %w", err)
		}
		doc.Vector = vector
	}

	if err := s.backend.Store(ctx, s.collection, doc); err != nil {
		return "", fmt.Errorf("database: store failed: %w", err)
	}
	return doc.ID, nil
}

// Search embeds the query once and returns at most limit results in
// descending score order. Results scoring below scoreThreshold are
// excluded on every backend; a threshold of zero disables the cutoff.
// Backend failures propagate as errors, they are never collapsed into an
// empty result list.
func (s *Service) Search(ctx context.Context, query string, limit int, scoreThreshold float32) ([]vectordb.QueryResult, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, fmt.Errorf("database: query cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("database: limit must be greater than 0")
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "database.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.type", s.dbType),
		attribute.String("db.collection", s.collection),
		attribute.Int("search.limit", limit),
	)

	start := time.Now()
	results, err := s.search(ctx, query, limit, scoreThreshold)
	s.observer.ObserveSearch(s.dbType, time.Since(start), len(results), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Search failed", err, map[string]interface{}{
			"db_type": s.dbType,
		})
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.hits", len(results)))
	return results, nil
}

func (s *Service) search(ctx context.Context, query string, limit int, scoreThreshold float32) ([]vectordb.QueryResult, error) {
	vector, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("database: embed query: %w", err)
	}

	results, err := s.backend.Search(ctx, s.collection, vectordb.SearchRequest{
		Query:          query,
		Vector:         vector,
		Limit:          limit,
		ScoreThreshold: scoreThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("database: search failed: %w", err)
	}

	// Backends return their own ordering; the contract here is one
	// descending order regardless of backend.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Service) requireInitialized() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return fmt.Errorf("database: service not initialized, call Initialize first")
	}
	return nil
}

// stampMetadata copies the caller's metadata and stamps the knowledge
// fields on top.
func stampMetadata(metadata map[string]any, domain string) map[string]any {
	stamped := make(map[string]any, len(metadata)+4)
	for k, v := range metadata {
		stamped[k] = v
	}
	stamped[vectordb.KeySource] = domain
	stamped[keyTimestamp] = time.Now().UTC().Format(time.RFC3339)
	stamped[keyType] = entryType
	stamped[keyVersion] = entryVersion
	return stamped
}

func embedsOnStore(b vectordb.Backend) bool {
	se, ok := b.(vectordb.SelfEmbedder)
	return ok && se.EmbedsOnStore()
}
