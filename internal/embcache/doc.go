// Package embcache caches embedding vectors in Redis.
//
// It decorates embedding.Provider: lookups are batched with MGET, misses
// are embedded through the inner provider in a single batch, and cache
// failures degrade to misses so Redis outages never break embedding.
package embcache
