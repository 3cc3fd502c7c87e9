package blobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blobColumns = []string{"user_id", "name", "version", "size", "storage_key", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestLock(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^SELECT pg_advisory_xact_lock\(hashtextextended\(\$1 \|\| '/' \|\| \$2, 0\)\)$`).
		WithArgs("u1", "a.txt").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Lock(context.Background(), "u1", "a.txt"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLock_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnError(errors.New("boom"))

	err := repo.Lock(context.Background(), "u1", "a.txt")
	require.ErrorContains(t, err, "db error: boom")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT .* FROM blobs\s+WHERE user_id = \$1 AND name = \$2$`).
		WithArgs("u1", "a.txt").
		WillReturnRows(sqlmock.NewRows(blobColumns).AddRow("u1", "a.txt", int64(3), int64(10), "k1", ts))

	b, err := repo.Get(context.Background(), "u1", "a.txt", false)
	require.NoError(t, err)
	assert.Equal(t, &models.Blob{UserID: "u1", Name: "a.txt", Version: 3, Size: 10, StorageKey: "k1", UpdatedAt: ts}, b)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_ForUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FOR UPDATE$`).
		WithArgs("u1", "a.txt").
		WillReturnRows(sqlmock.NewRows(blobColumns).AddRow("u1", "a.txt", int64(1), int64(1), "k", time.Now()))

	_, err := repo.Get(context.Background(), "u1", "a.txt", true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT`).WithArgs("u1", "nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1", "nope", false)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT INTO blobs .* ON CONFLICT \(user_id, name\) DO UPDATE\s+SET version = blobs.version \+ 1.*RETURNING version, updated_at$`).
		WithArgs("u1", "a.txt", int64(42), "k2").
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(2), ts))

	b, err := repo.Upsert(context.Background(), &models.Blob{UserID: "u1", Name: "a.txt", Size: 42, StorageKey: "k2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.Version)
	assert.Equal(t, ts, b.UpdatedAt)
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO blobs`).WillReturnError(errors.New("boom"))

	_, err := repo.Upsert(context.Background(), &models.Blob{UserID: "u1", Name: "a"})
	require.ErrorContains(t, err, "db error: boom")
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^DELETE FROM blobs\s+WHERE user_id = \$1 AND name = \$2\s+RETURNING storage_key$`).
		WithArgs("u1", "a.txt").
		WillReturnRows(sqlmock.NewRows([]string{"storage_key"}).AddRow("k1"))

	key, err := repo.Delete(context.Background(), "u1", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "k1", key)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE FROM blobs`).WithArgs("u1", "x").WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "u1", "x")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT .* FROM blobs\s+WHERE user_id = \$1\s+ORDER BY name$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(blobColumns).
			AddRow("u1", "a", int64(1), int64(5), "k1", ts).
			AddRow("u1", "b", int64(4), int64(7), "k2", ts))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, int64(4), got[1].Version)
}

func TestList_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

	_, err := repo.List(context.Background(), "u1")
	require.Error(t, err)
}
