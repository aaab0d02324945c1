// Package blobstore persists named byte blobs in a local database and adapts
// a store into an lru.Loader, so the cache can be filled from disk.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/lru"
)

// ErrNotFound is returned by Get for a key that is not stored. It wraps
// lru.ErrNotFound so cache callers can match either sentinel.
var ErrNotFound = fmt.Errorf("blobstore: %w", lru.ErrNotFound)

// ErrUnsupportedScheme is returned by Open for an unknown URL scheme.
var ErrUnsupportedScheme = errors.New("unsupported store scheme")

// Store reads and writes blobs by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Open opens the store named by rawURL. Supported forms are
// sqlite://path/to/file.db, bolt://path/to/file.db, and memory://.
func Open(ctx context.Context, rawURL string) (Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("blobstore: parse %q: %w", rawURL, err)
	}
	path := u.Host + u.Path
	if u.Scheme == "sqlite" || u.Scheme == "bolt" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("blobstore: create dir for %s: %w", path, err)
		}
	}
	switch u.Scheme {
	case "sqlite":
		return OpenSQLite(ctx, path)
	case "bolt":
		return OpenBolt(path)
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("blobstore: %w: %q", ErrUnsupportedScheme, u.Scheme)
}

// Blob is a stored value as held by the cache.
type Blob []byte

// SizeBytes returns the length of b.
func (b Blob) SizeBytes() int64 { return int64(len(b)) }

// NewLoader returns an lru.Loader that reads misses from s.
func NewLoader(s Store) lru.Loader[string, Blob] {
	return lru.LoaderFunc[string, Blob](func(ctx context.Context, key string) (Blob, error) {
		data, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return Blob(data), nil
	})
}
