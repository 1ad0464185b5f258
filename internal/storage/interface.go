package storage

import (
	"context"
	"errors"
)

// Common errors that can be returned by any storage implementation
var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrStorageConnection = errors.New("storage connection error")
	ErrNotConfigured     = errors.New("storage is not configured")
	ErrMalformed         = errors.New("malformed task collection")
)

// DefaultKey is the fixed key the task collection is stored under
const DefaultKey = "futuristicTodos"

// KV is a local key-value store holding one raw value per key.
// Get returns ErrKeyNotFound when nothing is stored under key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
