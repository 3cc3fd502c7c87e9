// Package pending is the outbox of transfers waiting for the next sync
// cycle. Rows survive failures and restarts; the sync worker deletes a row
// only after its transfer succeeded.
package pending

import (
	"context"
	"time"
)

type Direction string

const (
	Upload   Direction = "upload"
	Download Direction = "download"
)

func (d Direction) Valid() bool {
	return d == Upload || d == Download
}

// Operation is one queued transfer. LocalPath is the source file of an
// upload, or the destination of a download (empty means the download
// directory).
type Operation struct {
	ID        string
	Name      string
	Direction Direction
	LocalPath string
	Attempts  int
	LastError string
	CreatedAt time.Time
	// Generation grows every time the row is re-queued. Delete and
	// MarkFailed only touch the generation the caller read.
	Generation int64
}

type Repository interface {
	// Enqueue inserts op, or refreshes the queued operation with the same
	// name and direction. op.ID and op.Generation are set from the stored row.
	Enqueue(ctx context.Context, op *Operation) error
	// List returns operations oldest first.
	List(ctx context.Context) ([]*Operation, error)
	Count(ctx context.Context) (int, error)
	// Delete removes the row if it is still at generation. It reports
	// whether a row was removed; false means the row was re-queued since.
	Delete(ctx context.Context, id string, generation int64) (bool, error)
	// MarkFailed bumps the attempt counter and records the error. A row
	// re-queued since generation is left alone and ErrSuperseded returned.
	MarkFailed(ctx context.Context, id string, generation int64, message string) error
	Clear(ctx context.Context) error
}
