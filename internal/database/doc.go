// Package database is the knowledge-base façade over the vector database
// backends.
//
// The Service owns everything backend-agnostic: it generates the query or
// document embedding exactly once per operation, stamps knowledge metadata
// (source domain, timestamp, type, version) on writes, generates entry
// identifiers and returns the identifier actually written, enforces the
// result limit and a single descending score order, and propagates backend
// failures as errors on every backend.
//
// The concrete backend is selected by Config.Type; see NewBackend for the
// selection switch and the backend packages (qdrant, chroma, pgvector) for
// their native behavior.
package database
