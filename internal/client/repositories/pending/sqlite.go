package pending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/google/uuid"
)

var (
	ErrInvalidOperation = errors.New("invalid pending operation")
	// ErrSuperseded means the row was re-queued after it was read.
	ErrSuperseded = errors.New("pending operation superseded")
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, op *Operation) error {
	if op.Name == "" || !op.Direction.Valid() {
		return fmt.Errorf("%w: name=%q direction=%q", ErrInvalidOperation, op.Name, op.Direction)
	}
	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = r.now()
	}

	query := `INSERT INTO pending (id, name, direction, local_path, attempts, last_error, created_at, generation)
		VALUES (?, ?, ?, ?, 0, '', ?, 1)
		ON CONFLICT(name, direction) DO UPDATE SET
			local_path = excluded.local_path,
			attempts = 0,
			last_error = '',
			created_at = excluded.created_at,
			generation = pending.generation + 1
		RETURNING id, generation`

	err := r.db.QueryRowContext(ctx, query,
		op.ID, op.Name, string(op.Direction), op.LocalPath, op.CreatedAt.UnixNano()).Scan(&op.ID, &op.Generation)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", op.Direction, op.Name, err)
	}

	op.Attempts = 0
	op.LastError = ""
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Operation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, direction, local_path, attempts, last_error, created_at, generation
		FROM pending ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending: %w", err)
	}
	defer rows.Close()

	var result []*Operation
	for rows.Next() {
		var (
			op        Operation
			direction string
			createdAt int64
		)
		if err := rows.Scan(&op.ID, &op.Name, &direction, &op.LocalPath, &op.Attempts, &op.LastError, &createdAt, &op.Generation); err != nil {
			return nil, fmt.Errorf("failed to scan pending row: %w", err)
		}
		op.Direction = Direction(direction)
		op.CreatedAt = time.Unix(0, createdAt)
		result = append(result, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string, generation int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending WHERE id = ? AND generation = ?`, id, generation)
	if err != nil {
		return false, fmt.Errorf("failed to delete pending %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id string, generation int64, message string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pending SET attempts = attempts + 1, last_error = ? WHERE id = ? AND generation = ?`,
		message, id, generation)
	if err != nil {
		return fmt.Errorf("failed to mark pending %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var current int64
	err = r.db.QueryRowContext(ctx, `SELECT generation FROM pending WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("pending %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read pending %s: %w", id, err)
	}
	return fmt.Errorf("pending %s at generation %d: %w", id, current, ErrSuperseded)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending`); err != nil {
		return fmt.Errorf("failed to clear pending: %w", err)
	}
	return nil
}
