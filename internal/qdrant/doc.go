// Package qdrant implements the vectordb.Backend interface on top of the
// official Qdrant Go client.
//
// Collections are created with cosine distance, so Qdrant's native scores
// are already similarities ("higher = more similar") and pass through the
// adapter unchanged. The score threshold of a search request is enforced
// server-side via the query API's cutoff.
//
// Stored points carry the raw document text and all stamped metadata in
// their payload, which lets search results be returned without a second
// lookup.
package qdrant
