// Package storage holds the attachment handler: the Backend abstraction over
// where uploaded files live (local disk or S3) and the AttachmentStore that
// names files and maps them to public /uploads paths.
package storage

import (
	"context"
	"io"
	"time"
)

// Backend stores flat, uniquely named objects.
type Backend interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Get opens an object for reading; common.ErrorNotFound when absent.
	Get(ctx context.Context, key string) (*Object, error)
	// Delete removes an object; deleting an absent object is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// Object is the provider-agnostic representation of a stored file.
type Object struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}

// ObjectInfo describes a stored object without opening it.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}
