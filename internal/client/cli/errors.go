package cli

import (
	"errors"

	"github.com/dmitrijs2005/gophsync/internal/client/services"
	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/client/syncer"
	"github.com/dmitrijs2005/gophsync/internal/client/syncstatus"
	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/filex"
)

var errUsage = errors.New("usage")

// describeError turns a command error into the hint printed at the prompt.
func describeError(err error) string {
	switch {
	case errors.Is(err, storage.ErrAuthRequired), errors.Is(err, storage.ErrUnauthorized):
		return "please login"
	case errors.Is(err, storage.ErrEncryption):
		return "re-enter password (login)"
	case errors.Is(err, storage.ErrTimeout), errors.Is(err, storage.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, storage.ErrNotFound):
		return "no such object"
	case errors.Is(err, services.ErrLocalDataNotAvailable):
		return "no offline data for this account, connect to the server to login"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "user already exists"
	case errors.Is(err, syncstatus.ErrInvalidTransition), errors.Is(err, syncer.ErrAlreadyRunning):
		return "cannot sync now (offline or a sync is running)"
	case errors.Is(err, filex.ErrUnsafeName):
		return "invalid object name"
	default:
		return err.Error()
	}
}
