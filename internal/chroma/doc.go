// Package chroma implements the vectordb.Backend interface on top of the
// chroma-go v2 client.
//
// Chroma is an embedded collection store with its own embedding-function
// abstraction: collections are bound to an embedding function at creation,
// and items added to a collection are embedded by the store itself. The
// adapter bridges the application's embedding client into that abstraction
// (see NewEmbeddingFunction), so both write paths use the same model.
//
// Queries return cosine distances; the adapter converts them to similarity
// scores as 1 − distance, which assumes a distance metric bounded in [0,1].
// The search score threshold is applied client-side after conversion, since
// Chroma has no server-side cutoff.
package chroma
