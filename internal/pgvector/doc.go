// Package pgvector implements the vectordb.Backend interface on PostgreSQL
// with the pgvector extension.
//
// Each collection is a table with an HNSW cosine index over a vector(N)
// column. Similarity search uses the <=> cosine-distance operator and
// returns scores as 1 − distance, computed inside the query so the
// threshold cutoff also runs server-side.
package pgvector
