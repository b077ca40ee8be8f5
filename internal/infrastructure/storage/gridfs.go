// Package storage provides the blob store backing pattern files and chat
// images. Bytes live in a GridFS bucket inside the same MongoDB database as
// the document collections, keyed by generated ObjectID references.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// GridFSStore implements ports.BlobStore on a GridFS bucket.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore creates the bucket on the given database.
func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Put streams the file into GridFS and returns its reference as a hex string.
func (s *GridFSStore) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	id, err := s.bucket.UploadFromStream(filename, r)
	if err != nil {
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	return id.Hex(), nil
}

// Get reads the whole file back. Pattern files and chat images are small
// enough that buffering them is fine.
func (s *GridFSStore) Get(ctx context.Context, id string) ([]byte, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("gridfs reference %q: %w", id, err)
	}

	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(oid, &buf); err != nil {
		return nil, fmt.Errorf("gridfs download: %w", err)
	}
	return buf.Bytes(), nil
}

// Delete removes the file and its chunks.
func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("gridfs reference %q: %w", id, err)
	}
	if err := s.bucket.Delete(oid); err != nil {
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}
