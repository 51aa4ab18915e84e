// Package vectordb defines the backend-agnostic contract for vector
// storage and similarity search.
//
// # Overview
//
// The [Backend] interface is implemented by one adapter per supported
// vector database:
//
//   - internal/qdrant   — server-based dense-vector index (gRPC)
//   - internal/chroma   — embedded collection store with its own
//     embedding-function abstraction
//   - internal/pgvector — PostgreSQL with the pgvector extension
//
// The service layer (internal/database) selects exactly one adapter at
// construction time and never branches on backend type afterwards.
//
// # Score semantics
//
// The backends natively return different quantities: Qdrant reports cosine
// similarity, Chroma reports cosine distance, pgvector reports distance via
// the <=> operator. Each adapter converts to one comparable scale — higher
// means more similar — before results cross this package's types, so
// callers never see a backend-native score.
package vectordb
