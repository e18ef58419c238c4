package storage

import (
	"context"
)

// ObjectStore defines the interface for content storage. Put returns the
// public URL the stored object is reachable at; that URL is what delivery
// records reference.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, error)
	Close() error
}
