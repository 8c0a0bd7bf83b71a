package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wayfarer-app/wayfarer/internal/client/blob"
	"github.com/wayfarer-app/wayfarer/internal/client/cache"
	"github.com/wayfarer-app/wayfarer/internal/client/config"
	"github.com/wayfarer-app/wayfarer/internal/client/models"
	"github.com/wayfarer-app/wayfarer/internal/client/ratelimit"
	"github.com/wayfarer-app/wayfarer/internal/client/reachability"
	"github.com/wayfarer-app/wayfarer/internal/client/remote"
	"github.com/wayfarer-app/wayfarer/internal/client/store"
	"github.com/wayfarer-app/wayfarer/internal/client/sync"
	"github.com/wayfarer-app/wayfarer/internal/filex"
	"github.com/wayfarer-app/wayfarer/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	cache   *cache.Manager
	remote  remote.Service
	limiter *ratelimit.Limiter
	coord   *sync.Coordinator
	monitor *reachability.Monitor

	user   *models.User
	Mode   Mode
	reader *bufio.Reader
}

// NewApp wires the full client stack from configuration: local database,
// blob cache, backend client, cache manager, rate limiter, sync coordinator,
// and reachability monitor.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.Setup(c.LogLevel)

	if err := filex.EnsureDir(filepath.Dir(c.DatabasePath)); err != nil {
		return nil, err
	}

	db, kv, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "initializing database failed", "err", err)
		return nil, err
	}

	blobs, err := blob.New(c.CacheDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	api := remote.NewHTTPClient(c.APIBaseURL, c.ProbeTimeout)

	mgr := cache.NewManager(kv, blobs, api, logger)

	coord := sync.NewCoordinator(mgr, logger)
	coord.RegisterHandler(models.CollectionTrips, sync.NewTripsHandler(api, mgr, logger))

	monitor := reachability.New(api, c.OnlineCheckInterval, c.ProbeTimeout, logger)

	app := &App{
		config:  c,
		log:     logger.With("component", "cli"),
		db:      db,
		cache:   mgr,
		remote:  api,
		limiter: ratelimit.New(kv, logger),
		coord:   coord,
		monitor: monitor,
		Mode:    ModeOffline,
		reader:  bufio.NewReader(os.Stdin),
	}

	// restore the cached session so the user is recognized before the
	// first successful probe
	if u, ok := mgr.GetUser(ctx); ok {
		app.user = u
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Printf("Switched to %s mode\n", mode)
	}
}

// Run starts the connectivity watcher and the REPL, blocking until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	unbind := a.coord.Bind(a.monitor)
	defer unbind()

	unsub := a.monitor.Subscribe(func(online bool) {
		if online {
			a.setMode(ModeOnline)
		} else {
			a.setMode(ModeOffline)
		}
	})
	defer unsub()

	a.monitor.Start(ctx)
	defer a.monitor.Stop()

	a.Root(ctx)
}

func (a *App) Close() {
	if err := a.remote.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client failed", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database failed", "err", err)
	}
}
