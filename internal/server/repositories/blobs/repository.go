// Package blobs stores the per-user object metadata of the server.
package blobs

import (
	"context"

	"github.com/dmitrijs2005/gophsync/internal/server/models"
)

type Repository interface {
	// Lock takes a transaction-scoped advisory lock on (userID, name). It
	// serializes writers of a name that has no row yet, which FOR UPDATE
	// cannot lock.
	Lock(ctx context.Context, userID, name string) error
	// Get returns the blob or common.ErrorNotFound. With forUpdate the row
	// stays locked until the surrounding transaction ends.
	Get(ctx context.Context, userID, name string, forUpdate bool) (*models.Blob, error)
	// Upsert inserts the blob at version 1 or replaces it with the version
	// bumped. Version and UpdatedAt are filled in from the database.
	Upsert(ctx context.Context, blob *models.Blob) (*models.Blob, error)
	// Delete removes the blob and returns its storage key.
	Delete(ctx context.Context, userID, name string) (string, error)
	List(ctx context.Context, userID string) ([]*models.Blob, error)
}
