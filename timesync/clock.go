// Package timesync maps wall clock time to block heights.
package timesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
)

var errBadDuration = errors.New("block duration must be positive")

// Config of the height clock.
type Config struct {
	GenesisTime   time.Time     `mapstructure:"genesis-time"`
	BlockDuration time.Duration `mapstructure:"block-duration"`
}

// DefaultConfig produces a height every 6 seconds.
func DefaultConfig() Config {
	return Config{
		GenesisTime:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		BlockDuration: 6 * time.Second,
	}
}

// Opt for configuring NodeClock.
type Opt func(*NodeClock)

// WithLogger sets logger for NodeClock.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *NodeClock) {
		c.logger = logger
	}
}

// WithClock overwrites the wall clock.
func WithClock(clock clockwork.Clock) Opt {
	return func(c *NodeClock) {
		c.clock = clock
	}
}

// NodeClock converts time to heights. Height 0 starts at genesis,
// every following height starts BlockDuration later.
type NodeClock struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	genesis  time.Time
	duration time.Duration
}

// NewClock creates clock for the config.
func NewClock(cfg Config, opts ...Opt) (*NodeClock, error) {
	if cfg.BlockDuration <= 0 {
		return nil, fmt.Errorf("%w: %s", errBadDuration, cfg.BlockDuration)
	}
	c := &NodeClock{
		logger:   zap.NewNop(),
		clock:    clockwork.NewRealClock(),
		genesis:  cfg.GenesisTime,
		duration: cfg.BlockDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Info("created height clock",
		zap.Time("genesis", c.genesis),
		zap.Duration("block_duration", c.duration),
		zap.Uint32("current", c.CurrentHeight().Uint32()),
	)
	return c, nil
}

// GenesisTime returns time of height 0.
func (c *NodeClock) GenesisTime() time.Time {
	return c.genesis
}

// TimeToHeight returns the height that the time belongs to. Times before genesis map to 0.
func (c *NodeClock) TimeToHeight(t time.Time) types.Height {
	if t.Before(c.genesis) {
		return 0
	}
	elapsed := uint64(t.Sub(c.genesis) / c.duration)
	if elapsed > uint64(types.MaxHeight) {
		return types.MaxHeight
	}
	return types.Height(elapsed)
}

// HeightToTime returns the time when the height starts.
func (c *NodeClock) HeightToTime(h types.Height) time.Time {
	return c.genesis.Add(time.Duration(h) * c.duration)
}

// CurrentHeight returns height at the current wall clock time.
func (c *NodeClock) CurrentHeight() types.Height {
	return c.TimeToHeight(c.clock.Now())
}

// AwaitHeight blocks until the height starts or the context is canceled.
func (c *NodeClock) AwaitHeight(ctx context.Context, h types.Height) error {
	wait := c.HeightToTime(h).Sub(c.clock.Now())
	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(wait):
		return nil
	}
}
