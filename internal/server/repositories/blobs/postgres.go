package blobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lock(ctx context.Context, userID, name string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1 || '/' || $2, 0))`
	if _, err := r.db.ExecContext(ctx, query, userID, name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, name string, forUpdate bool) (*models.Blob, error) {
	query :=
		`SELECT user_id, name, version, size, storage_key, updated_at FROM blobs
		 WHERE user_id = $1 AND name = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	b := &models.Blob{}
	err := r.db.QueryRowContext(ctx, query, userID, name).
		Scan(&b.UserID, &b.Name, &b.Version, &b.Size, &b.StorageKey, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, blob *models.Blob) (*models.Blob, error) {
	query :=
		`INSERT INTO blobs (user_id, name, size, storage_key)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, name) DO UPDATE
		 SET version = blobs.version + 1,
		     size = EXCLUDED.size,
		     storage_key = EXCLUDED.storage_key,
		     updated_at = now()
		 RETURNING version, updated_at`

	err := r.db.QueryRowContext(ctx, query, blob.UserID, blob.Name, blob.Size, blob.StorageKey).
		Scan(&blob.Version, &blob.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return blob, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, name string) (string, error) {
	query :=
		`DELETE FROM blobs
		 WHERE user_id = $1 AND name = $2
		 RETURNING storage_key`

	var key string
	if err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Blob, error) {
	query :=
		`SELECT user_id, name, version, size, storage_key, updated_at FROM blobs
		 WHERE user_id = $1
		 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Blob
	for rows.Next() {
		b := &models.Blob{}
		if err := rows.Scan(&b.UserID, &b.Name, &b.Version, &b.Size, &b.StorageKey, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
