package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/config"
	"github.com/dmitrijs2005/gophsync/internal/client/localdb"
	"github.com/dmitrijs2005/gophsync/internal/client/services"
	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/client/syncer"
	"github.com/dmitrijs2005/gophsync/internal/client/syncstatus"
	"github.com/dmitrijs2005/gophsync/internal/client/transport"
	"github.com/dmitrijs2005/gophsync/internal/filex"
	"github.com/dmitrijs2005/gophsync/internal/logging"
)

// session is the read side of storage.Client the prompt needs.
type session interface {
	IsAuthenticated() bool
	HasEncryptionKey() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

type worker interface {
	RunOnce(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	session       session
	pinger        pinger
	authService   services.AuthService
	objectService services.ObjectService
	worker        worker
	status        *syncstatus.Aggregate
	closers       []io.Closer

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	mu       sync.RWMutex
	userName string
}

// NewApp builds the client from c. The returned App owns the database and
// the connection; release them with Close.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	alg, err := c.Algorithm()
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureDir(filepath.Dir(c.DatabasePath)); err != nil {
		return nil, err
	}
	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	downloadDir, err := filex.EnsureDir(c.DownloadDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tr, err := transport.New(c.ServerEndpointAddr, transport.WithRequestTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client := storage.NewClient(c.ServerEndpointAddr, tr,
		storage.WithAlgorithm(alg),
		storage.WithLogger(logger),
	)

	repos := localdb.NewRepositories(db)
	status := syncstatus.New()

	w := syncer.NewWorker(client, repos.Pending, repos.Metadata, status, downloadDir,
		syncer.WithConcurrency(c.SyncConcurrency),
		syncer.WithItemTimeout(c.RequestTimeout),
		syncer.WithLogger(logger),
	)
	if err := w.Restore(ctx); err != nil {
		logger.Warn(ctx, "last sync time not restored", "error", err)
	}

	return &App{
		config:        c,
		logger:        logger.With("module", "cli"),
		session:       client,
		pinger:        client,
		authService:   services.NewAuthService(tr, client, db, logger),
		objectService: services.NewObjectService(client, repos.Pending),
		worker:        w,
		status:        status,
		closers:       []io.Closer{client, dbCloser{db}},
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		now:           time.Now,
	}, nil
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

// Close logs out and releases the connection and the database.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Run blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to gophsync (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.worker.Run(ctx, a.config.SyncInterval)

	if err := a.Login(ctx); err != nil {
		printlnFn("Error:", describeError(err))
	}

	runREPL(ctx, a, a.prompt, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.session.HasEncryptionKey()
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) currentUserName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName
}

// prompt renders "(alice · Synced)" style status for the REPL.
func (a *App) prompt() string {
	label := syncstatus.Label(a.status.Snapshot().Status)
	if name := a.currentUserName(); name != "" {
		return fmt.Sprintf("(%s · %s)", name, label)
	}
	return fmt.Sprintf("(%s)", label)
}
