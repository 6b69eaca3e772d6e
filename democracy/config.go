package democracy

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-democracy/tally"
)

// Config for the governance engine. Periods are measured in heights.
type Config struct {
	// LaunchPeriod is how often the best backed public proposal is tabled.
	LaunchPeriod uint32 `mapstructure:"launch-period"`
	// VotingPeriod is the length of ballots created from public proposals.
	VotingPeriod   uint32 `mapstructure:"voting-period"`
	EnactmentDelay uint32 `mapstructure:"enactment-delay"`
	// LockPeriod is multiplied by strength to get the lock after a won vote.
	LockPeriod     uint32 `mapstructure:"lock-period"`
	MinimumDeposit uint64 `mapstructure:"minimum-deposit"`
	MaxStrength    uint8  `mapstructure:"max-strength"`
	// MaxDelegationDepth bounds the delegation walk of a single direct voter.
	MaxDelegationDepth int `mapstructure:"max-delegation-depth"`
	PreviewCacheSize   int `mapstructure:"preview-cache-size"`
}

// DefaultConfig for the engine.
func DefaultConfig() Config {
	return Config{
		LaunchPeriod:       100,
		VotingPeriod:       100,
		EnactmentDelay:     50,
		LockPeriod:         50,
		MinimumDeposit:     100,
		MaxStrength:        6,
		MaxDelegationDepth: tally.DefaultDepth,
		PreviewCacheSize:   64,
	}
}

// Validate returns an error for a config the engine can't run with.
func (c *Config) Validate() error {
	if c.LaunchPeriod == 0 {
		return errors.New("launch period must be positive")
	}
	if c.VotingPeriod == 0 {
		return errors.New("voting period must be positive")
	}
	if c.MaxStrength == 0 {
		return errors.New("max strength must be positive")
	}
	if c.MaxDelegationDepth < 0 {
		return fmt.Errorf("negative delegation depth %d", c.MaxDelegationDepth)
	}
	if c.PreviewCacheSize <= 0 {
		return fmt.Errorf("preview cache size must be positive, got %d", c.PreviewCacheSize)
	}
	return nil
}
