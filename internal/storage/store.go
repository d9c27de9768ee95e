// Package storage provides the local key-value store the tracker persists
// into, with in-memory and SQLite implementations behind a common port.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the persistence port. Writes are synchronous: when Set returns,
// the value is durable as far as the backend can guarantee.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
