// Package ingest loads documents into the knowledge base.
//
// A Source yields files from a local directory or an S3-compatible bucket;
// text is extracted (plain text, Markdown, PDF), chunked by word count,
// and each chunk is stored with its origin path and chunk index as
// metadata. Chunk stores run concurrently with a bounded worker count.
package ingest
