package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/client/repositories/pending"
	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/common"
)

// Remote is the part of storage.Client the catalogue calls directly.
type Remote interface {
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]storage.ObjectInfo, error)
}

// ObjectService queues transfers for the sync worker and runs the
// metadata-only calls against the server.
type ObjectService interface {
	// QueueUpload schedules localPath to be stored under name.
	QueueUpload(ctx context.Context, name, localPath string) error
	// QueueDownload schedules name to be fetched to destPath, or into the
	// download directory when destPath is empty.
	QueueDownload(ctx context.Context, name, destPath string) error
	Pending(ctx context.Context) ([]*pending.Operation, error)
	// QueueLength is the number of transfers waiting for the next cycle.
	QueueLength(ctx context.Context) (int, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]storage.ObjectInfo, error)
}

type objectService struct {
	remote  Remote
	pending pending.Repository
}

func NewObjectService(remote Remote, pendingRepo pending.Repository) ObjectService {
	return &objectService{remote: remote, pending: pendingRepo}
}

func (s *objectService) QueueUpload(ctx context.Context, name, localPath string) error {
	fi, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", localPath, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", common.ErrorValidation, localPath)
	}

	return s.pending.Enqueue(ctx, &pending.Operation{Name: name, Direction: pending.Upload, LocalPath: localPath})
}

func (s *objectService) QueueDownload(ctx context.Context, name, destPath string) error {
	return s.pending.Enqueue(ctx, &pending.Operation{Name: name, Direction: pending.Download, LocalPath: destPath})
}

func (s *objectService) Pending(ctx context.Context) ([]*pending.Operation, error) {
	return s.pending.List(ctx)
}

func (s *objectService) QueueLength(ctx context.Context) (int, error) {
	return s.pending.Count(ctx)
}

func (s *objectService) Remove(ctx context.Context, name string) error {
	return s.remote.Delete(ctx, name)
}

func (s *objectService) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.remote.List(ctx)
}
