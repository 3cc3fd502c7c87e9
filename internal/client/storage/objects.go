package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/cryptox"
)

// Upload encrypts plaintext and stores it remotely under name. The object
// name is bound to the ciphertext as associated data, so a blob moved to a
// different name fails to open. It returns the version assigned by the server.
func (c *Client) Upload(ctx context.Context, name string, plaintext []byte) (int64, error) {
	token, err := c.RequireAuth()
	if err != nil {
		return 0, err
	}

	var blob []byte
	err = c.withEncryptionKey(func(key *cryptox.Key) error {
		var sealErr error
		blob, sealErr = cryptox.Seal(c.algorithm, key, plaintext, []byte(name))
		return sealErr
	})
	if err != nil {
		if errors.Is(err, errNoKey) {
			return 0, err
		}
		return 0, encryptionError(err.Error())
	}

	version, err := c.transport.Put(ctx, token, name, blob)
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", name, contextError(ctx, err))
	}

	c.logger.Info(ctx, "object uploaded", "name", name, "version", version, "size", len(blob))
	return version, nil
}

// Download fetches name and decrypts it.
func (c *Client) Download(ctx context.Context, name string) ([]byte, error) {
	token, err := c.RequireAuth()
	if err != nil {
		return nil, err
	}
	// Fail before the round trip when there is nothing to decrypt with.
	if !c.HasEncryptionKey() {
		return nil, errNoKey
	}

	blob, err := c.transport.Get(ctx, token, name)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, contextError(ctx, err))
	}

	var plaintext []byte
	err = c.withEncryptionKey(func(key *cryptox.Key) error {
		var openErr error
		plaintext, openErr = cryptox.Open(key, blob, []byte(name))
		return openErr
	})
	if err != nil {
		if errors.Is(err, errNoKey) {
			return nil, err
		}
		return nil, encryptionError(fmt.Sprintf("open %s: %v", name, err))
	}

	c.logger.Info(ctx, "object downloaded", "name", name, "size", len(plaintext))
	return plaintext, nil
}

// Delete removes name from the remote store.
func (c *Client) Delete(ctx context.Context, name string) error {
	token, err := c.RequireAuth()
	if err != nil {
		return err
	}

	if err := c.transport.Delete(ctx, token, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, contextError(ctx, err))
	}
	return nil
}

// List returns metadata of every object the account owns. Names and sizes
// are visible to the server; contents are not.
func (c *Client) List(ctx context.Context) ([]ObjectInfo, error) {
	token, err := c.RequireAuth()
	if err != nil {
		return nil, err
	}

	objects, err := c.transport.List(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list: %w", contextError(ctx, err))
	}
	return objects, nil
}
