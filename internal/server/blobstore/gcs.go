package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/dmitrijs2005/favfood/internal/common"
	"google.golang.org/api/option"
)

// gcsObjects narrows a bucket handle to what the store needs.
type gcsObjects interface {
	NewWriter(ctx context.Context, key, contentType string) io.WriteCloser
	NewReader(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

type bucketObjects struct {
	bucket *storage.BucketHandle
}

func (b bucketObjects) NewWriter(ctx context.Context, key, contentType string) io.WriteCloser {
	w := b.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = 0
	return w
}

func (b bucketObjects) NewReader(ctx context.Context, key string) (io.ReadCloser, string, error) {
	r, err := b.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, "", err
	}
	return r, r.Attrs.ContentType, nil
}

func (b bucketObjects) Delete(ctx context.Context, key string) error {
	return b.bucket.Object(key).Delete(ctx)
}

// GCSStore stores objects in a Google Cloud Storage bucket.
type GCSStore struct {
	objects gcsObjects
}

// NewGCSStore creates a client from credsPath, or from Application Default
// Credentials when credsPath is empty.
func NewGCSStore(ctx context.Context, bucket, credsPath string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket is not configured")
	}

	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{objects: bucketObjects{bucket: client.Bucket(bucket)}}, nil
}

func (g *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	w := g.objects.NewWriter(ctx, key, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (g *GCSStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	r, contentType, err := g.objects.NewReader(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("gcs get %s: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("gcs read %s: %w", key, err)
	}
	return data, contentType, nil
}

func (g *GCSStore) Delete(ctx context.Context, key string) error {
	err := g.objects.Delete(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}
