package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/client/config"
	"github.com/dmitrijs2005/meuponto/internal/client/storage"
	"github.com/dmitrijs2005/meuponto/internal/client/store"
	"github.com/dmitrijs2005/meuponto/internal/filex"
	"github.com/dmitrijs2005/meuponto/internal/logging"
)

// Options carries the process surroundings of an App. Zero values fall
// back to stdin, stdout, stderr and time.Now.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// App is one running client: configuration, logger, database and the
// state store, plus the terminal it talks to.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	store  *store.Store
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time

	// ttyPassword reads passwords without echo.
	ttyPassword bool

	closers []func() error
}

// NewApp opens the database, builds the store and loads the stored data.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	opts = opts.withDefaults()

	a := &App{
		config: cfg,
		in:     bufio.NewReader(opts.In),
		out:    opts.Out,
		now:    opts.Now,

		ttyPassword: stdinIsTerminal(opts.In),
	}

	if err := a.initLogger(opts.Err); err != nil {
		return nil, err
	}

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		_ = a.Close()
		return nil, err
	}
	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		a.log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		_ = a.Close()
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DatabasePath, err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	a.store = store.New(storage.NewSQLiteGateway(db),
		store.WithClock(opts.Now),
		store.WithLogger(a.log),
	)

	lctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if err := a.store.LoadAll(lctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) initLogger(errOut io.Writer) error {
	if a.config.LogFile == "" {
		a.log = logging.NewTextLogger(errOut, a.config.LogLevel)
		return nil
	}

	if err := filex.EnsureParentDir(a.config.LogFile); err != nil {
		return err
	}
	l, closeFn, err := logging.NewFileLogger(logging.FileOptions{
		Filename:   a.config.LogFile,
		Level:      a.config.LogLevel,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return err
	}
	a.log = l
	a.closers = append(a.closers, closeFn)
	return nil
}

// Close releases the database and log file, last opened first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Store exposes the state store, mostly for tests and embedding.
func (a *App) Store() *store.Store {
	return a.store
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.CommandTimeout)
}

func (a *App) hasUser() bool {
	return a.store.Snapshot().User != nil
}
