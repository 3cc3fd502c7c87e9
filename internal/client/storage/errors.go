package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means no access token is set. Callers should send the
	// user to the login prompt.
	ErrAuthRequired = errors.New("authentication required")

	// ErrEncryption covers key derivation failures and operations attempted
	// without a key. Callers should re-prompt for the password.
	ErrEncryption = errors.New("encryption error")

	// ErrUnauthorized means the server rejected the token or credentials.
	ErrUnauthorized = errors.New("unauthorized")

	ErrUnavailable = errors.New("server unavailable")
	ErrTimeout     = errors.New("request timed out")
	ErrNotFound    = errors.New("object not found")
)

func encryptionError(msg string) error {
	return fmt.Errorf("%w: %s", ErrEncryption, msg)
}

// errNoKey is returned by every key-consuming operation when no key is set.
var errNoKey = encryptionError("no encryption key set")

// contextError turns an expired deadline into ErrTimeout.
func contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
