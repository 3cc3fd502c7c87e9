package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/cryptox"
	"github.com/dmitrijs2005/gophsync/internal/server/auth"
	"github.com/dmitrijs2005/gophsync/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

var testSalt = bytes.Repeat([]byte{7}, cryptox.SaltSize)

func TestUserService_Register(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", testSalt, []byte("verifier"))
	require.NoError(t, err)
	assert.Equal(t, "id-alice", u.ID)

	_, err = s.Register(ctx, "alice", testSalt, []byte("verifier"))
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestUserService_Register_Validation(t *testing.T) {
	s := newUserService(t, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "", testSalt, []byte("v"))
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(ctx, "bob", []byte("short"), []byte("v"))
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(ctx, "bob", testSalt, nil)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUserService_Register_RepoError(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.createErr = errBoom
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "alice", testSalt, []byte("v"))
	require.ErrorIs(t, err, errBoom)
}

func TestUserService_GetSalt(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", testSalt, []byte("v"))
	require.NoError(t, err)

	salt, err := s.GetSalt(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, testSalt, salt)

	decoy1, err := s.GetSalt(ctx, "ghost")
	require.NoError(t, err)
	decoy2, err := s.GetSalt(ctx, "ghost")
	require.NoError(t, err)
	other, err := s.GetSalt(ctx, "phantom")
	require.NoError(t, err)

	assert.Len(t, decoy1, cryptox.SaltSize)
	assert.Equal(t, decoy1, decoy2)
	assert.NotEqual(t, decoy1, other)
}

func TestUserService_GetSalt_RepoError(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.getErr = errBoom
	s := newUserService(t, rm)

	_, err := s.GetSalt(context.Background(), "alice")
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestUserService_Login(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", testSalt, []byte("verifier"))
	require.NoError(t, err)

	token, err := s.Login(ctx, "alice", []byte("verifier"))
	require.NoError(t, err)

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestUserService_Login_Failures(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", testSalt, []byte("verifier"))
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", []byte("wrong"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "ghost", []byte("verifier"))
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	rm.users.getErr = errors.New("db down")
	_, err = s.Login(ctx, "alice", []byte("verifier"))
	require.ErrorIs(t, err, common.ErrorInternal)
}
