package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
	"github.com/dmitrijs2005/gophsync/internal/server/objectstore"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var ErrBlobTooLarge = errors.New("blob too large")

// BlobService stores opaque ciphertext per user and name. Metadata lives in
// the database, bytes in the object store under a fresh random key per
// write, so a failed write never clobbers the previous version.
type BlobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       objectstore.Store
	maxBlobSize int64
	logger      logging.Logger
}

func NewBlobService(db *sql.DB, m repomanager.RepositoryManager, store objectstore.Store, maxBlobSize int64, logger logging.Logger) *BlobService {
	return &BlobService{
		db:          db,
		repomanager: m,
		store:       store,
		maxBlobSize: maxBlobSize,
		logger:      logger.With("module", "blob_service"),
	}
}

// GetRandomStorageKey returns a fresh object store key under the user's prefix.
func GetRandomStorageKey(userID string) string {
	return fmt.Sprintf("users/%s/%v", userID, uuid.New())
}

// Put stores data as the newest version of name and returns that version.
// The last write wins.
func (s *BlobService) Put(ctx context.Context, userID, name string, data []byte) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", common.ErrorValidation)
	}
	if int64(len(data)) > s.maxBlobSize {
		return 0, fmt.Errorf("%w: %d bytes, limit %d", ErrBlobTooLarge, len(data), s.maxBlobSize)
	}

	key := GetRandomStorageKey(userID)
	if err := s.store.Put(ctx, key, data); err != nil {
		return 0, err
	}

	var previous string
	blob := &models.Blob{UserID: userID, Name: name, Size: int64(len(data)), StorageKey: key}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Blobs(tx)

		// FOR UPDATE locks nothing while name has no row yet.
		if err := repo.Lock(ctx, userID, name); err != nil {
			return err
		}

		old, err := repo.Get(ctx, userID, name, true)
		switch {
		case err == nil:
			previous = old.StorageKey
		case errors.Is(err, common.ErrorNotFound):
		default:
			return err
		}

		_, err = repo.Upsert(ctx, blob)
		return err
	})
	if err != nil {
		s.discard(ctx, key)
		return 0, err
	}

	if previous != "" {
		s.discard(ctx, previous)
	}

	s.logger.Debug(ctx, "blob stored", "user_id", userID, "version", blob.Version, "size", blob.Size)
	return blob.Version, nil
}

// Get returns the newest ciphertext of name or common.ErrorNotFound.
func (s *BlobService) Get(ctx context.Context, userID, name string) ([]byte, error) {
	blob, err := s.repomanager.Blobs(s.db).Get(ctx, userID, name, false)
	if err != nil {
		return nil, err
	}

	data, err := s.store.Get(ctx, blob.StorageKey)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			s.logger.Error(ctx, "metadata without object", "user_id", userID, "storage_key", blob.StorageKey)
			return nil, fmt.Errorf("%w: object missing from store", common.ErrorNotFound)
		}
		return nil, err
	}
	return data, nil
}

// Delete removes name; an unknown name yields common.ErrorNotFound.
func (s *BlobService) Delete(ctx context.Context, userID, name string) error {
	key, err := s.repomanager.Blobs(s.db).Delete(ctx, userID, name)
	if err != nil {
		return err
	}
	s.discard(ctx, key)
	return nil
}

// List returns the user's blobs ordered by name.
func (s *BlobService) List(ctx context.Context, userID string) ([]*models.Blob, error) {
	return s.repomanager.Blobs(s.db).List(ctx, userID)
}

// discard deletes an object that no metadata row points at any more. A
// failure leaves an orphan which is only logged.
func (s *BlobService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "orphaned object not deleted", "storage_key", key, "error", err)
	}
}
