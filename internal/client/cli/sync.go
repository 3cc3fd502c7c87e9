package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/syncstatus"
)

const ansiReset = "\x1b[0m"

// Sync runs one cycle now and prints the resulting status.
func (a *App) Sync(ctx context.Context) error {
	err := a.worker.RunOnce(ctx)
	a.printStatus()
	return err
}

// Status prints the status line, the number of queued transfers, and
// clears an acknowledged error.
func (a *App) Status(ctx context.Context) error {
	a.printStatus()
	n, err := a.objectService.QueueLength(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(a.out, "%d queued\n", n)
	}
	if a.status.Snapshot().Status == syncstatus.StatusError {
		_ = a.status.Acknowledge()
	}
	return nil
}

func (a *App) printStatus() {
	snap := a.status.Snapshot()
	sev := syncstatus.SeverityOf(snap.Status)
	fmt.Fprintf(a.out, "%s%s%s\n", sev.ANSI(), syncstatus.Summary(snap, a.now()), ansiReset)
}
