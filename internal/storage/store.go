// Package storage provides the key-value persistence used for user
// histories and profiles. Every backend offers an atomic read-modify-write
// so concurrent appends for one user never lose an entry.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/medscan/internal/config"
)

// ErrSkipWrite may be returned by an UpdateFunc to leave the value untouched.
var ErrSkipWrite = errors.New("storage: skip write")

// UpdateFunc receives the current value (found is false when the key is
// absent) and returns the value to store.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a durable string-keyed value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update applies fn atomically with respect to other Updates of the same key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

// Open creates the backend selected in the configuration.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageMemory, "":
		return NewMemoryStore(), nil
	case config.StorageRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case config.StoragePostgres:
		return NewPostgresStore(cfg.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
