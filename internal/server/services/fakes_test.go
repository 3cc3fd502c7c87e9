package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
	"github.com/dmitrijs2005/gophsync/internal/server/objectstore"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "id-" + u.UserName
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type blobKey struct{ user, name string }

type fakeBlobsRepo struct {
	mu        sync.Mutex
	rows      map[blobKey]*models.Blob
	upsertErr error
	lockErr   error
	calls     []string
	now       time.Time
}

func (f *fakeBlobsRepo) Lock(ctx context.Context, userID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "lock "+name)
	return f.lockErr
}

func (f *fakeBlobsRepo) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBlobsRepo) Get(ctx context.Context, userID, name string, forUpdate bool) (*models.Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if forUpdate {
		f.calls = append(f.calls, "get "+name)
	}
	b, ok := f.rows[blobKey{userID, name}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlobsRepo) Upsert(ctx context.Context, blob *models.Blob) (*models.Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "upsert "+blob.Name)
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	blob.Version = 1
	if old, ok := f.rows[blobKey{blob.UserID, blob.Name}]; ok {
		blob.Version = old.Version + 1
	}
	blob.UpdatedAt = f.now
	cp := *blob
	f.rows[blobKey{blob.UserID, blob.Name}] = &cp
	return blob, nil
}

func (f *fakeBlobsRepo) Delete(ctx context.Context, userID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[blobKey{userID, name}]
	if !ok {
		return "", common.ErrorNotFound
	}
	delete(f.rows, blobKey{userID, name})
	return b.StorageKey, nil
}

func (f *fakeBlobsRepo) List(ctx context.Context, userID string) ([]*models.Blob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Blob
	for k, b := range f.rows {
		if k.user == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	blobs *fakeBlobsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users: &fakeUsersRepo{byName: map[string]*models.User{}},
		blobs: &fakeBlobsRepo{rows: map[blobKey]*models.Blob{}, now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.users }
func (m *fakeRepoManager) Blobs(dbx.DBTX) blobs.Repository              { return m.blobs }

// failingStore wraps a MemoryStore and fails the selected operations.
type failingStore struct {
	*objectstore.MemoryStore
	putErr error
	getErr error
}

func (f *failingStore) Put(ctx context.Context, key string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryStore.Put(ctx, key, data)
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

var errBoom = errors.New("boom")
