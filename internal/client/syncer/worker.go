// Package syncer drains the pending queue: each queued upload or download is
// transferred through the storage client and reported to the status
// aggregate. There is no merge step; the server keeps the last write.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsync/internal/client/repositories/pending"
	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/client/syncstatus"
	"github.com/dmitrijs2005/gophsync/internal/filex"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 4
	DefaultItemTimeout = 30 * time.Second

	MessageTimeout = "sync timed out"
)

var ErrAlreadyRunning = errors.New("sync already running")

// Objects is the part of storage.Client the worker needs.
type Objects interface {
	Upload(ctx context.Context, name string, plaintext []byte) (int64, error)
	Download(ctx context.Context, name string) ([]byte, error)
}

type Worker struct {
	objects     Objects
	pending     pending.Repository
	meta        metadata.Repository
	status      *syncstatus.Aggregate
	logger      logging.Logger
	downloadDir string
	concurrency int
	itemTimeout time.Duration

	running atomic.Bool
}

type Option func(*Worker)

func WithConcurrency(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

func WithItemTimeout(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.itemTimeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(w *Worker) { w.logger = l }
}

func NewWorker(objects Objects, pendingRepo pending.Repository, meta metadata.Repository,
	status *syncstatus.Aggregate, downloadDir string, opts ...Option) *Worker {
	w := &Worker{
		objects:     objects,
		pending:     pendingRepo,
		meta:        meta,
		status:      status,
		logger:      logging.Nop(),
		downloadDir: downloadDir,
		concurrency: DefaultConcurrency,
		itemTimeout: DefaultItemTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("module", "syncer")
	return w
}

// Restore loads the persisted last sync time into the aggregate.
func (w *Worker) Restore(ctx context.Context) error {
	last, err := w.meta.GetTime(ctx, metadata.KeyLastSync)
	if err != nil {
		return err
	}
	w.status.Restore(last)
	return nil
}

// RunOnce runs one cycle over everything queued. An empty queue is a no-op.
// Failed items stay queued with their error recorded; the first failure is
// returned and moves the aggregate to Error.
func (w *Worker) RunOnce(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer w.running.Store(false)

	ops, err := w.pending.List(ctx)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	if err := w.status.Start(len(ops)); err != nil {
		return err
	}
	w.logger.Info(ctx, "sync started", "pending", len(ops))

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for _, op := range ops {
		g.Go(func() error {
			return w.process(ctx, op)
		})
	}

	if err := g.Wait(); err != nil {
		msg := FailureMessage(err)
		_ = w.status.Fail(msg)
		w.logger.Warn(ctx, "sync failed", "error", err, "message", msg)
		return err
	}

	if err := w.status.Complete(); err != nil {
		return err
	}

	snap := w.status.Snapshot()
	if err := w.meta.SetTime(ctx, metadata.KeyLastSync, snap.LastSync); err != nil {
		w.logger.Warn(ctx, "last sync time not saved", "error", err)
	}
	w.logger.Info(ctx, "sync completed", "uploaded", snap.Uploaded, "downloaded", snap.Downloaded)
	return nil
}

func (w *Worker) process(ctx context.Context, op *pending.Operation) error {
	ictx, cancel := context.WithTimeout(ctx, w.itemTimeout)
	defer cancel()

	dir, err := w.transfer(ictx, op)
	if err != nil {
		markErr := w.pending.MarkFailed(ctx, op.ID, op.Generation, err.Error())
		switch {
		case markErr == nil:
		case errors.Is(markErr, pending.ErrSuperseded):
			w.logger.Debug(ctx, "failed item was re-queued", "name", op.Name, "direction", op.Direction)
		default:
			w.logger.Error(ctx, "pending update failed", "id", op.ID, "error", markErr)
		}
		return fmt.Errorf("%s %s: %w", op.Direction, op.Name, err)
	}

	removed, err := w.pending.Delete(ctx, op.ID, op.Generation)
	if err != nil {
		return err
	}
	if !removed {
		// Re-queued while in flight; the newer request waits for the next cycle.
		w.logger.Debug(ctx, "item re-queued during transfer", "name", op.Name, "direction", op.Direction)
	}
	w.logger.Debug(ctx, "item synced", "name", op.Name, "direction", op.Direction)
	return w.status.ItemCompleted(dir)
}

func (w *Worker) transfer(ctx context.Context, op *pending.Operation) (syncstatus.Direction, error) {
	switch op.Direction {
	case pending.Upload:
		data, err := os.ReadFile(op.LocalPath)
		if err != nil {
			return 0, err
		}
		_, err = w.objects.Upload(ctx, op.Name, data)
		return syncstatus.DirectionUpload, err

	case pending.Download:
		dest := op.LocalPath
		if dest == "" {
			var err error
			if dest, err = filex.SafeJoin(w.downloadDir, op.Name); err != nil {
				return 0, err
			}
		}
		data, err := w.objects.Download(ctx, op.Name)
		if err != nil {
			return 0, err
		}
		return syncstatus.DirectionDownload, filex.WriteFileAtomic(dest, data, 0o600)

	default:
		return 0, fmt.Errorf("%w: direction %q", pending.ErrInvalidOperation, op.Direction)
	}
}

// Run calls RunOnce every interval until ctx is done. Cycles that cannot
// start, e.g. while offline, are skipped silently.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := w.RunOnce(ctx)
			switch {
			case err == nil:
			case errors.Is(err, syncstatus.ErrInvalidTransition), errors.Is(err, ErrAlreadyRunning):
				w.logger.Debug(ctx, "sync skipped", "reason", err)
			case ctx.Err() != nil:
				return
			}
		}
	}
}

// FailureMessage is the short text shown for a failed cycle.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return MessageTimeout
	case errors.Is(err, storage.ErrAuthRequired), errors.Is(err, storage.ErrUnauthorized):
		return "login required"
	case errors.Is(err, storage.ErrEncryption):
		return "password required"
	case errors.Is(err, storage.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, storage.ErrNotFound):
		return "object not found"
	default:
		return err.Error()
	}
}
