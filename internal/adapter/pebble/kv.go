// Package pebble is the client's local durable key-value store. It holds the
// cached user, the token pair and UI preferences between CLI runs.
package pebble

import (
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/quietpage/quietpage/internal/domain"
)

// KV wraps a pebble database with string keys.
type KV struct {
	db *pebble.DB
}

// Open opens (creating if needed) a pebble database in dir.
func Open(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("pebble.Open: mkdir: %w", err)
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble.Open: %w", err)
	}
	return &KV{db: db}, nil
}

// OpenInMemory opens a database backed by an in-memory filesystem.
func OpenInMemory() (*KV, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("pebble.OpenInMemory: %w", err)
	}
	return &KV{db: db}, nil
}

// Get returns a copy of the value stored under key, or domain.ErrNotFound.
func (k *KV) Get(key string) ([]byte, error) {
	v, closer, err := k.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pebble.Get %q: %w", key, err)
	}
	defer closer.Close()

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key and syncs to disk.
func (k *KV) Set(key string, value []byte) error {
	if err := k.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble.Set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing a missing key is not an error.
func (k *KV) Delete(key string) error {
	if err := k.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("pebble.Delete %q: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (k *KV) Close() error {
	if k == nil || k.db == nil {
		return nil
	}
	return k.db.Close()
}
