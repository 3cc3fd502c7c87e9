package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/common"
)

// getSimpleText, getTextWithDefault and getPassword are test seams over the
// interactive input helpers.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	if userName == "" {
		return fmt.Errorf("%w: empty username", common.ErrorValidation)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. Use 'login' to sign in.")
	return nil
}

// Login tries the server first and falls back to the cached verifier when
// the server cannot be reached. An offline login holds only the key, so
// transfers wait until a later online login.
func (a *App) Login(ctx context.Context) error {
	saved, err := a.authService.SavedUsername(ctx)
	if err != nil {
		a.logger.Warn(ctx, "saved username lookup failed", "error", err)
	}

	userName, err := getTextWithDefault(a.reader, "Enter username", saved, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.setUserName(userName)
		a.status.SetOffline(false)
		fmt.Fprintln(a.out, "Logged in.")
		return nil

	case errors.Is(err, storage.ErrUnavailable), errors.Is(err, storage.ErrTimeout):
		fmt.Fprintln(a.out, "Server unavailable, trying offline login...")
		if err := a.authService.OfflineLogin(ctx, userName, password); err != nil {
			return err
		}
		a.setUserName(userName)
		a.status.SetOffline(true)
		fmt.Fprintln(a.out, "Logged in offline. Transfers resume after an online login.")
		return nil

	default:
		return err
	}
}

// Logout drops both secrets. With --forget the cached credentials, last sync
// time and pending queue are erased too.
func (a *App) Logout(ctx context.Context, args []string) error {
	forget := len(args) > 0 && args[0] == "--forget"

	if err := a.authService.Logout(ctx, forget); err != nil {
		return err
	}
	a.setUserName("")

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
