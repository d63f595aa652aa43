package store

import (
	"context"
	"errors"
)

// Store persists small serialized blobs under named keys. Reads and writes
// are best effort; callers log failures and fall back to defaults.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")

// Each key is owned by exactly one component.
const (
	CartKey  = "global-optima-cart"
	ThemeKey = "global-optima-theme"
)
