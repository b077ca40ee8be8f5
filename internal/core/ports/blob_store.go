package ports

import (
	"context"
	"io"
)

// BlobStore provides access to opaque file storage. Keys are generated by the
// store and treated as opaque references by callers.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
	Get(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}
