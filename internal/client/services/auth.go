// Package services contains the client's application services: the account
// flow that provisions the storage session, and the object catalogue that
// queues transfers for the sync worker.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/localdb"
	"github.com/dmitrijs2005/gophsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/cryptox"
	"github.com/dmitrijs2005/gophsync/internal/dbx"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

var ErrLocalDataNotAvailable = errors.New("local data unavailable")

// AccountAPI is the server side of registration and login.
type AccountAPI interface {
	Register(ctx context.Context, username string, salt, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) (string, error)
}

// Session is the secret holder the account flow provisions. *storage.Client
// implements it.
type Session interface {
	SetAccessToken(token string)
	SetEncryptionKey(password, salt []byte) error
	RequireEncryptionKey() (*cryptox.Key, error)
	Logout()
}

// AuthService registers accounts and logs the session in, either online
// against the server or offline against the locally cached verifier.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	// OnlineLogin sets both the key and the access token, and caches what
	// OfflineLogin needs.
	OnlineLogin(ctx context.Context, username string, password []byte) error
	// OfflineLogin sets only the key. Object operations keep failing with
	// storage.ErrAuthRequired until an online login succeeds.
	OfflineLogin(ctx context.Context, username string, password []byte) error
	// SavedUsername returns the cached username, or "" if there is none.
	SavedUsername(ctx context.Context) (string, error)
	Logout(ctx context.Context, clearOfflineData bool) error
	ClearOfflineData(ctx context.Context) error
}

type authService struct {
	api     AccountAPI
	session Session
	db      *sql.DB
	logger  logging.Logger
}

func NewAuthService(api AccountAPI, session Session, db *sql.DB, logger logging.Logger) AuthService {
	return &authService{api: api, session: session, db: db, logger: logger.With("module", "auth")}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrEncryption, err)
	}
	verifier := cryptox.MakeVerifier(key)
	key.Wipe()

	if err := a.api.Register(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("register error: %w", err)
	}

	a.logger.Info(ctx, "account registered", "username", username)
	return nil
}

// verifier derives the verifier of the key currently held by the session.
func (a *authService) verifier() ([]byte, error) {
	key, err := a.session.RequireEncryptionKey()
	if err != nil {
		return nil, err
	}
	defer key.Wipe()
	return cryptox.MakeVerifier(key), nil
}

func (a *authService) OnlineLogin(ctx context.Context, username string, password []byte) error {
	salt, err := a.api.GetSalt(ctx, username)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	if err := a.session.SetEncryptionKey(password, salt); err != nil {
		return err
	}

	verifier, err := a.verifier()
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, username, verifier)
	if err != nil {
		a.session.Logout()
		return fmt.Errorf("login error: %w", err)
	}
	a.session.SetAccessToken(token)

	if err := a.saveOfflineData(ctx, username, salt, verifier); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}

	a.logger.Info(ctx, "logged in", "username", username, "mode", "online")
	return nil
}

func (a *authService) saveOfflineData(ctx context.Context, username string, salt, verifier []byte) error {
	return metadata.NewSQLiteRepository(a.db).SetAll(ctx, map[string][]byte{
		metadata.KeyUsername: []byte(username),
		metadata.KeySalt:     salt,
		metadata.KeyVerifier: verifier,
	})
}

func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	repo := metadata.NewSQLiteRepository(a.db)

	savedUsername, err := repo.Get(ctx, metadata.KeyUsername)
	if err != nil {
		return err
	}
	savedSalt, err := repo.Get(ctx, metadata.KeySalt)
	if err != nil {
		return err
	}
	savedVerifier, err := repo.Get(ctx, metadata.KeyVerifier)
	if err != nil {
		return err
	}
	if savedUsername == nil || savedSalt == nil || savedVerifier == nil {
		return ErrLocalDataNotAvailable
	}
	if string(savedUsername) != username {
		return storage.ErrUnauthorized
	}

	if err := a.session.SetEncryptionKey(password, savedSalt); err != nil {
		return err
	}

	candidate, err := a.verifier()
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(savedVerifier, candidate) == 0 {
		a.session.Logout()
		return storage.ErrUnauthorized
	}

	a.logger.Info(ctx, "logged in", "username", username, "mode", "offline")
	return nil
}

func (a *authService) SavedUsername(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(a.db).Get(ctx, metadata.KeyUsername)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (a *authService) Logout(ctx context.Context, clearOfflineData bool) error {
	a.session.Logout()
	a.logger.Info(ctx, "logged out", "clear_offline_data", clearOfflineData)

	if clearOfflineData {
		return a.ClearOfflineData(ctx)
	}
	return nil
}

// ClearOfflineData removes cached credentials, the last sync time and the
// pending queue.
func (a *authService) ClearOfflineData(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repos := localdb.NewRepositories(tx)
		if err := repos.Metadata.Clear(ctx); err != nil {
			return err
		}
		return repos.Pending.Clear(ctx)
	})
}
