package persistence

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Adapter is a durable key/value byte store. The training snapshot is kept
// as one blob under a single key.
type Adapter interface {
	// Get returns ErrKeyNotFound if nothing was ever stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backend is an Adapter owning connections or files that need releasing.
type Backend interface {
	Adapter
	Close() error
}
