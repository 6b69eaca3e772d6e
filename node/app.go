package node

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-democracy/cmd"
	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
	"github.com/spacemeshos/go-democracy/democracy"
	"github.com/spacemeshos/go-democracy/enactment"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/filesystem"
	"github.com/spacemeshos/go-democracy/ledger"
	"github.com/spacemeshos/go-democracy/log"
	"github.com/spacemeshos/go-democracy/metrics"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/timesync"
)

// Option to modify an App instance.
type Option func(app *App)

// WithLog enables logger for an App.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithClock overwrites the wall clock used to derive heights.
func WithClock(clock clockwork.Clock) Option {
	return func(app *App) {
		app.wallClock = clock
	}
}

// WithFs overwrites the filesystem used to read the genesis file.
func WithFs(fs afero.Fs) Option {
	return func(app *App) {
		app.fs = fs
	}
}

// New creates an instance of the governance node.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config:    &defaultConfig,
		log:       log.NewNop(),
		fs:        afero.NewOsFs(),
		wallClock: clockwork.NewRealClock(),
		loggers:   make(map[string]*zap.AtomicLevel),
		started:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// App is the governance node.
type App struct {
	Config *config.Config

	log       *zap.Logger
	fs        afero.Fs
	wallClock clockwork.Clock
	fileLock  *flock.Flock

	db         *sql.Database
	ledger     *ledger.Ledger
	dispatcher *enactment.Dispatcher
	reporter   *events.Reporter
	engine     *democracy.Engine
	clock      *timesync.NodeClock

	loggers map[string]*zap.AtomicLevel
	started chan struct{} // closed once all services are created
}

// Started is closed once the app has finished starting.
func (app *App) Started() <-chan struct{} {
	return app.started
}

// Engine returns the governance engine. Available after Started is closed.
func (app *App) Engine() *democracy.Engine {
	return app.engine
}

// Reporter returns the event reporter. Available after Started is closed.
func (app *App) Reporter() *events.Reporter {
	return app.reporter
}

// Lock locks the app for exclusive use. It returns an error if the app is already locked.
func (app *App) Lock() error {
	if _, err := filesystem.GetFullDirectoryPath(filepath.Dir(app.Config.FileLock)); err != nil {
		return fmt.Errorf("creating dir for lock %s: %w", app.Config.FileLock, err)
	}
	fl := flock.New(app.Config.FileLock)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", app.Config.FileLock, err)
	} else if !locked {
		return fmt.Errorf("only one node instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the app. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
}

// Initialize validates the configuration and prepares the data directory.
func (app *App) Initialize() error {
	if err := app.Config.Democracy.Validate(); err != nil {
		return fmt.Errorf("democracy config: %w", err)
	}
	types.SetNetworkHRP(app.Config.Address.NetworkHRP)
	if err := app.Config.Genesis.Validate(); err != nil {
		return fmt.Errorf("genesis config: %w", err)
	}
	if _, err := filesystem.GetFullDirectoryPath(app.Config.DataDir()); err != nil {
		return fmt.Errorf("data-dir %s not found or could not be created: %w", app.Config.DataDir(), err)
	}
	app.log.Info("initialized governance node",
		zap.String("version", cmd.Version),
		zap.String("commit", cmd.Commit),
		zap.String("data-dir", app.Config.DataDir()),
		zap.String("network-hrp", app.Config.Address.NetworkHRP),
	)
	return nil
}

// Wrap the top-level logger to set the level for a specific module.
//
// This method is not safe to be called concurrently.
func (app *App) addLogger(name string, logger *zap.Logger) *zap.Logger {
	lvl, err := decodeLoggerLevel(app.Config, name)
	if err != nil {
		app.log.Panic("unable to decode loggers into map[string]string", zap.Error(err))
	}
	app.loggers[name] = &lvl
	return logger.WithOptions(zap.IncreaseLevel(lvl)).Named(name)
}

// SetLogLevel updates the log level of an existing logger.
func (app *App) SetLogLevel(name, loglevel string) error {
	lvl, ok := app.loggers[name]
	if !ok {
		return fmt.Errorf("cannot find logger %v", name)
	}
	if err := lvl.UnmarshalText([]byte(loglevel)); err != nil {
		return fmt.Errorf("unmarshal text: %w", err)
	}
	return nil
}

func (app *App) setupDB() error {
	db, err := sql.Open("file:"+app.Config.DatabasePath(),
		sql.WithConnections(app.Config.DatabaseConnections),
		sql.WithLatencyMetering(app.Config.DatabaseLatencyMetering),
		sql.WithLogger(app.addLogger(DatabaseLogger, app.log)),
	)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	app.db = db
	return nil
}

// genesisBalances merges accounts from the genesis file with accounts from the config.
func (app *App) genesisBalances() (map[types.Address]types.Amount, error) {
	balances := map[types.Address]types.Amount{}
	if path := app.Config.Genesis.File; path != "" {
		genesis, err := ledger.ReadGenesis(app.fs, filesystem.GetCanonicalPath(path))
		if err != nil {
			return nil, err
		}
		fromFile, err := genesis.Parse()
		if err != nil {
			return nil, err
		}
		for addr, amount := range fromFile {
			balances[addr] = amount
		}
	}
	fromConfig, err := app.Config.Genesis.Balances()
	if err != nil {
		return nil, err
	}
	for addr, amount := range fromConfig {
		balances[addr] = amount
	}
	return balances, nil
}

func (app *App) loadGenesis(ctx context.Context) error {
	issuance, err := app.ledger.TotalIssuance(app.db)
	if err != nil {
		return err
	}
	if issuance != 0 {
		return nil
	}
	balances, err := app.genesisBalances()
	if err != nil {
		return err
	}
	return app.db.WithTx(ctx, func(tx *sql.Tx) error {
		return app.ledger.LoadGenesis(tx, balances)
	})
}

func (app *App) initServices(ctx context.Context) error {
	if err := app.setupDB(); err != nil {
		return err
	}
	app.ledger = ledger.New(ledger.WithLogger(app.addLogger(LedgerLogger, app.log)))
	if err := app.loadGenesis(ctx); err != nil {
		return fmt.Errorf("load genesis: %w", err)
	}
	app.dispatcher = enactment.New(app.ledger, enactment.WithLogger(app.addLogger(EnactmentLogger, app.log)))
	app.reporter = events.NewReporter(events.WithLogger(app.addLogger(EventsLogger, app.log)))
	engine, err := democracy.New(app.db, app.ledger, app.dispatcher,
		democracy.WithLogger(app.addLogger(EngineLogger, app.log)),
		democracy.WithConfig(app.Config.Democracy),
		democracy.WithPublisher(app.reporter),
	)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	app.engine = engine
	app.clock, err = timesync.NewClock(app.Config.Time,
		timesync.WithLogger(app.addLogger(ClockLogger, app.log)),
		timesync.WithClock(app.wallClock),
	)
	if err != nil {
		return fmt.Errorf("cannot create clock: %w", err)
	}
	return nil
}

// Start creates all services and runs them until the context is canceled or one of them fails.
func (app *App) Start(ctx context.Context) error {
	if err := app.initServices(ctx); err != nil {
		app.log.Error("failed to start App", zap.Error(err))
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	if app.Config.Metrics.Enable {
		srv, err := metrics.NewServer(app.addLogger(MetricsLogger, app.log), app.Config.Metrics.Listen)
		if err != nil {
			return err
		}
		eg.Go(func() error {
			return srv.Serve(ctx)
		})
	}
	logger := app.addLogger(AppLogger, app.log)
	eg.Go(func() error {
		return app.tickLoop(ctx, logger)
	})
	close(app.started)
	return eg.Wait()
}

// tickLoop processes every height from the last processed one up to the
// current height, and then waits for the next height to start.
func (app *App) tickLoop(ctx context.Context, logger *zap.Logger) error {
	last, processed, err := app.engine.LastTick()
	if err != nil {
		return err
	}
	var next types.Height
	if processed {
		next = last + 1
	}
	logger.Info("starting tick loop",
		zap.Uint32("next", next.Uint32()),
		zap.Uint32("current", app.clock.CurrentHeight().Uint32()),
	)
	for {
		if err := app.clock.AwaitHeight(ctx, next); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		for current := app.clock.CurrentHeight(); next <= current; next++ {
			if err := app.engine.OnTick(ctx, next); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("tick %d: %w", next, err)
			}
			if next == types.MaxHeight {
				logger.Warn("reached max height")
				<-ctx.Done()
				return nil
			}
		}
	}
}

// Cleanup releases resources opened by Start.
func (app *App) Cleanup() {
	app.log.Info("app cleanup starting...")
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.log.Error("failed to close database", zap.Error(err))
		}
	}
	app.log.Info("app cleanup completed")
}
