package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/syncstatus"
)

const pingTimeout = 3 * time.Second

// StartOnlineStatusWatcher pings the server every interval and moves the
// status aggregate in and out of Offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.pinger.Ping(pctx)
	cancel()

	wasOffline := a.status.Snapshot().Status == syncstatus.StatusOffline
	a.status.SetOffline(err != nil)
	isOffline := a.status.Snapshot().Status == syncstatus.StatusOffline

	if wasOffline != isOffline {
		if isOffline {
			a.logger.Info(ctx, "switched to offline mode", "error", err)
		} else {
			a.logger.Info(ctx, "switched to online mode")
		}
	}
}
