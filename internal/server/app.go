// Package server initializes and runs the gophsync blob-store server: it
// opens the metadata database, applies migrations, picks the object store
// and serves the gRPC API until the context is cancelled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsync/internal/logging"
	"github.com/dmitrijs2005/gophsync/internal/server/config"
	"github.com/dmitrijs2005/gophsync/internal/server/objectstore"
	"github.com/dmitrijs2005/gophsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophsync/internal/server/services"

	gs "github.com/dmitrijs2005/gophsync/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	blobService *services.BlobService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newObjectStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		userService: services.NewUserService(db, rm, c),
		blobService: services.NewBlobService(db, rm, store, c.MaxBlobSize, logger),
	}, nil
}

func newObjectStore(ctx context.Context, c *config.Config) (objectstore.Store, error) {
	switch c.ObjectStore {
	case config.ObjectStoreMemory:
		return objectstore.NewMemoryStore(), nil
	case config.ObjectStoreS3:
		s3, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
			BaseEndpoint: c.S3BaseEndpoint,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
		})
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("%w: unknown object store %q", config.ErrInvalidConfig, c.ObjectStore)
	}
}

// Run serves until ctx is done or the listener fails, then closes the
// database.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...", "object_store", app.config.ObjectStore)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.blobService,
		app.config.SecretKey, app.config.MaxBlobSize)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "Stopped")
	return nil
}
