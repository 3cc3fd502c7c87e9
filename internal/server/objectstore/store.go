// Package objectstore keeps the ciphertext of stored objects. Keys are
// opaque and assigned by the blob service; the store never sees names.
package objectstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("object not found")

type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns ErrNotFound for an unknown key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete of an unknown key is not an error.
	Delete(ctx context.Context, key string) error
}
