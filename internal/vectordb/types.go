package vectordb

// Metadata keys every backend agrees on. Adapters translate between these
// and their native payload representations.
const (
	// KeyText is the payload field holding the raw document text.
	KeyText = "text"

	// KeySource is the metadata field identifying where an entry came from
	// (the knowledge domain for stored knowledge, a file path for ingested
	// documents).
	KeySource = "source"

	// KeyScore is the metadata field carrying the normalized similarity
	// score on query results.
	KeyScore = "score"
)

// Document is a single entry to be written to a backend.
type Document struct {
	// ID is the unique identifier of the entry, generated fresh per store
	// call by the service layer.
	ID string `json:"id"`

	// Text is the opaque document body.
	Text string `json:"text"`

	// Vector is the embedding of Text. Backends that run their own
	// embedding function (Chroma) ignore it on store and embed Text
	// themselves; the others persist it as-is.
	Vector []float32 `json:"vector,omitempty"`

	// Metadata is the free-form metadata map stamped by the service layer.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchRequest is a single similarity query.
type SearchRequest struct {
	// Query is the raw query text. Kept alongside the vector for backends
	// and logs that want the human-readable form.
	Query string `json:"query"`

	// Vector is the query embedding, computed once by the service layer.
	Vector []float32 `json:"vector"`

	// Limit caps the number of results.
	Limit int `json:"limit"`

	// ScoreThreshold excludes results whose normalized score falls below
	// it. Zero means no cutoff.
	ScoreThreshold float32 `json:"scoreThreshold"`
}

// QueryResult is one similarity hit in backend-agnostic shape.
//
// Metadata always contains KeySource (string) and KeyScore (float64 with
// higher = more similar), plus whatever backend-native payload fields the
// entry was stored with.
type QueryResult struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// Score returns the normalized similarity score of the result.
func (r QueryResult) Score() float64 {
	if v, ok := r.Metadata[KeyScore].(float64); ok {
		return v
	}
	return 0
}

// Source returns the source tag of the result, or "" when absent.
func (r QueryResult) Source() string {
	if v, ok := r.Metadata[KeySource].(string); ok {
		return v
	}
	return ""
}
