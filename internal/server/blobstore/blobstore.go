// Package blobstore keeps large document fields (profile photos) out of the
// documents table, in S3-compatible storage, Google Cloud Storage or memory.
package blobstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/favfood/internal/server/config"
	"github.com/google/uuid"
)

// Store is an object store. Get returns common.ErrorNotFound for a missing
// key; deleting a missing key is not an error.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

var ErrNotDataURI = errors.New("not a base64 data URI")

// Key returns a fresh object key for a document field.
func Key(collection, id, field string) string {
	return fmt.Sprintf("documents/%s/%s/%s/%s", collection, id, field, uuid.NewString())
}

// ParseDataURI splits "data:<type>;base64,<payload>" into content type and
// decoded bytes.
func ParseDataURI(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", ErrNotDataURI
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return data, contentType, nil
}

// FormatDataURI is the inverse of ParseDataURI.
func FormatDataURI(data []byte, contentType string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// New builds the store selected by cfg.BlobBackend. The inline backend
// returns a nil Store: offloading is off and fields stay in the body.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.BlobBackend {
	case "", config.BlobBackendInline:
		return nil, nil
	case config.BlobBackendS3:
		return NewS3Store(ctx, cfg)
	case config.BlobBackendGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case config.BlobBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
