// Package metadata stores small key/value facts about the local account:
// the cached username, salt and verifier used for offline login, and the
// time of the last successful sync.
package metadata

import (
	"context"
	"time"
)

const (
	KeyUsername = "username"
	KeySalt     = "salt"
	KeyVerifier = "verifier"
	KeyLastSync = "last_sync"
)

type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetAll writes every pair in one statement.
	SetAll(ctx context.Context, values map[string][]byte) error
	Clear(ctx context.Context) error

	// GetTime reads a timestamp written by SetTime; a missing key yields
	// the zero time.
	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
}
