package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BucketSource yields supported objects from a MinIO (or any S3-compatible)
// bucket.
type BucketSource struct {
	client *minio.Client
	bucket string
	prefix string
	logger Logger
}

var _ Source = (*BucketSource)(nil)

// NewBucketSource connects to the object store and verifies the bucket
// exists.
func NewBucketSource(ctx context.Context, cfg MinioConfig, logger Logger) (*BucketSource, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ingest: missing MINIO_ENDPOINT")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("ingest: missing MINIO_BUCKET")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ingest: check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("ingest: bucket %s does not exist", cfg.Bucket)
	}

	return &BucketSource{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

// Walk lists objects under the configured prefix and yields the supported
// ones.
func (s *BucketSource) Walk(ctx context.Context, fn func(File) error) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	})

	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("ingest: list objects: %w", obj.Err)
		}
		if !supportedExtension(obj.Key) {
			s.logger.Debug("Skipping unsupported object", nil, map[string]interface{}{
				"key": obj.Key,
			})
			continue
		}

		data, err := s.get(ctx, obj.Key)
		if err != nil {
			return err
		}
		if err := fn(File{Path: obj.Key, Data: data}); err != nil {
			return err
		}
	}
	return nil
}

func (s *BucketSource) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ingest: get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("ingest: read object %s: %w", key, err)
	}
	return data, nil
}
