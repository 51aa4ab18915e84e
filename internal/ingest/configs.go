package ingest

import (
	"os"
	"strconv"
)

const defaultChunkWords = 500

// Config holds settings for an ingestion run.
type Config struct {
	// Dir is the local directory to ingest. Empty means ingest from the
	// object store instead.
	Dir string

	// Domain is the knowledge domain ingested chunks are stored under.
	Domain string

	// ChunkWords is the maximum chunk size in words.
	ChunkWords int

	// Workers bounds concurrent store operations.
	Workers int

	// Minio configures the object-store source, used when Dir is empty.
	Minio MinioConfig
}

// MinioConfig holds connection settings for the object-store source.
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Prefix          string
}

// NewConfig reads ingestion settings from environment variables:
//
//	INGEST_DIR          local directory, empty selects the object store
//	INGEST_DOMAIN       knowledge domain, defaults to "documents"
//	INGEST_CHUNK_WORDS  chunk size, defaults to 500
//	INGEST_WORKERS      concurrency, defaults to 4
//	MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY,
//	MINIO_USE_SSL, MINIO_BUCKET, MINIO_PREFIX
func NewConfig() *Config {
	return &Config{
		Dir:        os.Getenv("INGEST_DIR"),
		Domain:     getEnv("INGEST_DOMAIN", "documents"),
		ChunkWords: getEnvInt("INGEST_CHUNK_WORDS", defaultChunkWords),
		Workers:    getEnvInt("INGEST_WORKERS", 4),
		Minio: MinioConfig{
			Endpoint:        os.Getenv("MINIO_ENDPOINT"),
			AccessKeyID:     os.Getenv("MINIO_ACCESS_KEY"),
			SecretAccessKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:          os.Getenv("MINIO_USE_SSL") == "true",
			Bucket:          os.Getenv("MINIO_BUCKET"),
			Prefix:          os.Getenv("MINIO_PREFIX"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
