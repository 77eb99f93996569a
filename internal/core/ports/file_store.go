package ports

import (
	"context"
	"io"
)

// FileStore abstracts the object store holding document content. The MinIO
// implementation lives in infrastructure/storage.
type FileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
