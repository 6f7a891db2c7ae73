// Package storage is the file store for menu images. Two drivers exist:
// "local" (a directory served under /images) and "s3" (any S3-compatible
// bucket). Keys are slash separated, e.g. "images/pizza.jpg".
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for keys that escape the disk root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Disk is the driver interface.
type Disk interface {
	// Put writes r to key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader) error

	// Get returns the full content stored at key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. A missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}
