package vectordb

import "context"

// Backend is the common interface for all vector database backends.
// It captures the capability set the knowledge base needs — ensure a
// collection exists, store one entry, search by vector — so the service
// layer can switch between backends (Qdrant, Chroma, pgvector) without
// changing application code.
//
// Implementations normalize scores at this boundary: a result's score is
// always oriented so that higher means more similar, regardless of whether
// the backend natively reports similarity or distance.
type Backend interface {
	// EnsureCollection creates the named collection with the given vector
	// dimensionality if it does not exist. Safe to call multiple times; a
	// second call is a no-op.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// Store writes a single document entry to the collection. The entry's
	// identifier is chosen by the caller and is the identifier of the entry
	// actually written; implementations must not substitute their own.
	Store(ctx context.Context, collection string, doc Document) error

	// Search returns entries similar to the request vector, ordered by
	// descending score, at most req.Limit of them. Results below
	// req.ScoreThreshold are excluded. Failures propagate as errors; an
	// empty slice always means "no matches", never "search failed".
	Search(ctx context.Context, collection string, req SearchRequest) ([]QueryResult, error)
}

// SelfEmbedder is implemented by backends that embed document text
// themselves on store (Chroma binds an embedding function to the
// collection). The service layer skips computing Document.Vector for
// such backends so the text is not embedded twice.
type SelfEmbedder interface {
	EmbedsOnStore() bool
}
