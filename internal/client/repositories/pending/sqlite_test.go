package pending

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE pending (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    direction  TEXT NOT NULL CHECK (direction IN ('upload', 'download')),
    local_path TEXT NOT NULL DEFAULT '',
    attempts   INTEGER NOT NULL DEFAULT 0,
    last_error TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    generation INTEGER NOT NULL DEFAULT 1,
    UNIQUE (name, direction)
);`

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return r, db
}

func TestEnqueueAndList_Order(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	first := &Operation{Name: "b.txt", Direction: Upload, LocalPath: "/tmp/b.txt"}
	second := &Operation{Name: "a.txt", Direction: Download}
	require.NoError(t, r.Enqueue(ctx, first))
	require.NoError(t, r.Enqueue(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	ops, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "b.txt", ops[0].Name)
	assert.Equal(t, Upload, ops[0].Direction)
	assert.Equal(t, "/tmp/b.txt", ops[0].LocalPath)
	assert.True(t, first.CreatedAt.Equal(ops[0].CreatedAt))
	assert.Equal(t, "a.txt", ops[1].Name)
	assert.Equal(t, Download, ops[1].Direction)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestEnqueue_SameNameAndDirectionRefreshes(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	op := &Operation{Name: "n", Direction: Upload, LocalPath: "/old"}
	require.NoError(t, r.Enqueue(ctx, op))
	require.NoError(t, r.MarkFailed(ctx, op.ID, op.Generation, "offline"))
	assert.Equal(t, int64(1), op.Generation)

	again := &Operation{Name: "n", Direction: Upload, LocalPath: "/new"}
	require.NoError(t, r.Enqueue(ctx, again))
	assert.Equal(t, op.ID, again.ID, "existing row id is kept")
	assert.Equal(t, int64(2), again.Generation)

	ops, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "/new", ops[0].LocalPath)
	assert.Equal(t, int64(2), ops[0].Generation)
	assert.Zero(t, ops[0].Attempts)
	assert.Empty(t, ops[0].LastError)

	require.NoError(t, r.Enqueue(ctx, &Operation{Name: "n", Direction: Download}))
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "upload and download of one name are distinct")
}

func TestEnqueue_Invalid(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.ErrorIs(t, r.Enqueue(ctx, &Operation{Direction: Upload}), ErrInvalidOperation)
	require.ErrorIs(t, r.Enqueue(ctx, &Operation{Name: "x", Direction: "sideways"}), ErrInvalidOperation)
}

func TestMarkFailed(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	op := &Operation{Name: "x", Direction: Upload}
	require.NoError(t, r.Enqueue(ctx, op))
	require.NoError(t, r.MarkFailed(ctx, op.ID, op.Generation, "first"))
	require.NoError(t, r.MarkFailed(ctx, op.ID, op.Generation, "second"))

	ops, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, 2, ops[0].Attempts)
	assert.Equal(t, "second", ops[0].LastError)

	require.ErrorIs(t, r.MarkFailed(ctx, "nope", 1, "x"), common.ErrorNotFound)
}

func TestRequeuedRowSurvivesStaleDeleteAndMark(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	first := &Operation{Name: "a.txt", Direction: Upload, LocalPath: "/v1"}
	require.NoError(t, r.Enqueue(ctx, first))
	listed, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	stale := listed[0]

	require.NoError(t, r.Enqueue(ctx, &Operation{Name: "a.txt", Direction: Upload, LocalPath: "/v2"}))

	require.ErrorIs(t, r.MarkFailed(ctx, stale.ID, stale.Generation, "late failure"), ErrSuperseded)
	removed, err := r.Delete(ctx, stale.ID, stale.Generation)
	require.NoError(t, err)
	assert.False(t, removed)

	ops, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "/v2", ops[0].LocalPath)
	assert.Zero(t, ops[0].Attempts)
	assert.Empty(t, ops[0].LastError)

	removed, err = r.Delete(ctx, ops[0].ID, ops[0].Generation)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestDeleteAndClear(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	a := &Operation{Name: "a", Direction: Upload}
	b := &Operation{Name: "b", Direction: Upload}
	require.NoError(t, r.Enqueue(ctx, a))
	require.NoError(t, r.Enqueue(ctx, b))

	removed, err := r.Delete(ctx, a.ID, a.Generation)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = r.Delete(ctx, a.ID, a.Generation)
	require.NoError(t, err)
	assert.False(t, removed)
	ops, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, b.ID, ops[0].ID)

	require.NoError(t, r.Clear(ctx))
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestErrorsAreWrapped(t *testing.T) {
	r, db := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	require.ErrorContains(t, r.Enqueue(ctx, &Operation{Name: "a", Direction: Upload}), "failed to enqueue upload a")
	_, err := r.List(ctx)
	require.ErrorContains(t, err, "failed to list pending")
	_, err = r.Count(ctx)
	require.ErrorContains(t, err, "failed to count pending")
	_, err = r.Delete(ctx, "x", 1)
	require.ErrorContains(t, err, "failed to delete pending x")
	require.ErrorContains(t, r.MarkFailed(ctx, "x", 1, "m"), "failed to mark pending x")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear pending")
}
