package grpc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"github.com/dmitrijs2005/gophsync/internal/server/auth"
	"github.com/dmitrijs2005/gophsync/internal/server/models"
	"github.com/dmitrijs2005/gophsync/internal/server/services"
)

const testSecret = "super-secret"

// memUsers is an in-memory UserService issuing real tokens.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*models.User{}} }

func (m *memUsers) Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.users[username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: "id-" + username, UserName: username, Salt: salt, Verifier: verifier}
	m.users[username] = u
	return u, nil
}

func (m *memUsers) GetSalt(ctx context.Context, username string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[username]; ok {
		return u.Salt, nil
	}
	return []byte("decoy-salt-decoy-salt-decoy-salt"), nil
}

func (m *memUsers) Login(ctx context.Context, username string, verifier []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok || string(u.Verifier) != string(verifier) {
		return "", common.ErrorUnauthorized
	}
	return auth.GenerateToken(u.ID, []byte(testSecret), time.Hour)
}

type memBlobs struct {
	mu      sync.Mutex
	blobs   map[string]map[string]*models.Blob
	data    map[string]map[string][]byte
	maxSize int64
	err     error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{
		blobs:   map[string]map[string]*models.Blob{},
		data:    map[string]map[string][]byte{},
		maxSize: 1 << 20,
	}
}

func (m *memBlobs) Put(ctx context.Context, userID, name string, data []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if int64(len(data)) > m.maxSize {
		return 0, services.ErrBlobTooLarge
	}
	if m.blobs[userID] == nil {
		m.blobs[userID] = map[string]*models.Blob{}
		m.data[userID] = map[string][]byte{}
	}
	b := m.blobs[userID][name]
	if b == nil {
		b = &models.Blob{UserID: userID, Name: name}
		m.blobs[userID][name] = b
	}
	b.Version++
	b.Size = int64(len(data))
	b.UpdatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m.data[userID][name] = append([]byte(nil), data...)
	return b.Version, nil
}

func (m *memBlobs) stored(userID, name string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[userID][name]
}

func (m *memBlobs) Get(ctx context.Context, userID, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.data[userID][name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (m *memBlobs) Delete(ctx context.Context, userID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[userID][name]; !ok {
		return common.ErrorNotFound
	}
	delete(m.blobs[userID], name)
	delete(m.data[userID], name)
	return nil
}

func (m *memBlobs) List(ctx context.Context, userID string) ([]*models.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Blob
	for _, b := range m.blobs[userID] {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func newTestServer(users *memUsers, blobs *memBlobs) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), users, blobs, testSecret, 1<<20)
}
