// Package metrics exposes Prometheus metrics for the knowledge base: store
// and search counters and latency histograms per backend, search hit
// counts, and embedding cache hit/miss totals, served on a dedicated
// /metrics endpoint.
package metrics
