// Package democracy implements stake weighted voting on proposals with
// delegation, proxies and delayed enactment.
package democracy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
)

const (
	nextBallotKey   = "democracy/next-ballot"
	nextProposalKey = "democracy/next-proposal"
	nextTallyKey    = "democracy/next-tally"
	nextTickKey     = "democracy/next-tick"
	lastEndKey      = "democracy/last-end"
)

type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// Opt for configuring Engine.
type Opt func(*Engine)

// WithLogger sets logger for Engine.
func WithLogger(logger *zap.Logger) Opt {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig overwrites default config.
func WithConfig(cfg Config) Opt {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithPublisher sets receiver of committed events.
func WithPublisher(publisher Publisher) Opt {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

// New creates an engine on top of the database.
func New(db *sql.Database, ledger Ledger, enactor Enactor, opts ...Opt) (*Engine, error) {
	e := &Engine{
		logger:    zap.NewNop(),
		cfg:       DefaultConfig(),
		db:        db,
		ledger:    ledger,
		enactor:   enactor,
		publisher: noopPublisher{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	previews, err := lru.New[types.BallotID, cachedPreview](e.cfg.PreviewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create preview cache: %w", err)
	}
	e.previews = previews
	return e, nil
}

// Engine is the governance state machine. Every mutation is applied within
// a single sqlite transaction and serialized with all other mutations.
type Engine struct {
	logger    *zap.Logger
	cfg       Config
	db        *sql.Database
	ledger    Ledger
	enactor   Enactor
	publisher Publisher

	mu sync.RWMutex
	// version is incremented after every committed mutation.
	version  uint64
	previews *lru.Cache[types.BallotID, cachedPreview]
}

// Config returns the config the engine is running with.
func (e *Engine) Config() Config {
	return e.cfg
}

// update is a state transition with buffered events.
type update struct {
	tx     *sql.Tx
	events []events.Event
}

func (u *update) emit(ev events.Event) {
	u.events = append(u.events, ev)
}

// mutate runs fn in an immediate transaction. Events emitted by fn are
// published only if the transaction is committed.
func (e *Engine) mutate(ctx context.Context, fn func(*update) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	u := &update{}
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		u.tx = tx
		return fn(u)
	}); err != nil {
		return err
	}
	e.version++
	for _, ev := range u.events {
		e.logger.Debug("event", zap.String("name", ev.Name()), zap.Object("event", ev))
		e.publisher.Publish(ev)
	}
	return nil
}

// view runs fn with mutations excluded.
func (e *Engine) view(fn func(db sql.Executor) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.db)
}

// now is the last processed height, or zero before the first tick.
func now(db sql.Executor) (types.Height, error) {
	next, err := kvstore.GetUint64(db, nextTickKey)
	if err != nil {
		return 0, err
	}
	if next == 0 {
		return 0, nil
	}
	return types.Height(next - 1), nil
}

// notFound replaces sql.ErrNotFound with the sentinel of the engine.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
