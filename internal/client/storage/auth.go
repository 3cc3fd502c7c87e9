package storage

import (
	"context"

	"github.com/dmitrijs2005/gophsync/internal/cryptox"
)

// authState is either unauthenticated{} or authenticated{token}. RequireAuth
// is the only place that unwraps it.
type authState interface {
	isAuthState()
}

type unauthenticated struct{}

type authenticated struct {
	token string
}

func (unauthenticated) isAuthState() {}
func (authenticated) isAuthState()   {}

// SetAccessToken stores token, replacing any previous one. The token is not
// validated here; the server does that on the first authenticated call.
// An empty token logs the session out of the remote side.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == "" {
		c.auth = unauthenticated{}
		return
	}
	c.auth = authenticated{token: token}
}

// SetEncryptionKey derives the payload key from password and salt and stores
// it. On failure the previously stored key, if any, stays in place.
func (c *Client) SetEncryptionKey(password, salt []byte) error {
	key, err := cryptox.DeriveKey(password, salt)
	if err != nil {
		return encryptionError(err.Error())
	}

	c.mu.Lock()
	old := c.key
	c.key = key
	c.mu.Unlock()

	old.Wipe()
	c.logger.Info(context.Background(), "encryption key set", "fingerprint", key.Fingerprint())
	return nil
}

// RequireAuth returns the access token, or ErrAuthRequired if none is set.
func (c *Client) RequireAuth() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch s := c.auth.(type) {
	case authenticated:
		return s.token, nil
	default:
		return "", ErrAuthRequired
	}
}

// RequireEncryptionKey returns a copy of the encryption key. The caller owns
// the copy and should Wipe it when done. Without a key it fails with an
// ErrEncryption error.
func (c *Client) RequireEncryptionKey() (*cryptox.Key, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == nil {
		return nil, errNoKey
	}
	return c.key.Clone(), nil
}

// withEncryptionKey runs fn with the stored key while holding the read lock,
// so Logout cannot wipe the key while fn uses it.
func (c *Client) withEncryptionKey(fn func(key *cryptox.Key) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == nil {
		return errNoKey
	}
	return fn(c.key)
}

// IsAuthenticated reports whether an access token is set.
func (c *Client) IsAuthenticated() bool {
	_, err := c.RequireAuth()
	return err == nil
}

// HasEncryptionKey reports whether a key has been derived.
func (c *Client) HasEncryptionKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key != nil
}

// Logout drops the access token and wipes the encryption key.
func (c *Client) Logout() {
	c.mu.Lock()
	old := c.key
	c.key = nil
	c.auth = unauthenticated{}
	c.mu.Unlock()

	old.Wipe()
	c.logger.Info(context.Background(), "session secrets cleared")
}
