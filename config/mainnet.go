package config

import (
	"time"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/democracy"
	"github.com/spacemeshos/go-democracy/metrics"
	"github.com/spacemeshos/go-democracy/timesync"
)

// MainnetConfig returns the config used when no preset is selected.
func MainnetConfig() Config {
	logging := DefaultLoggingConfig()
	logging.DatabaseLoggerLevel = "warn"

	return Config{
		BaseConfig: DefaultBaseConfig(),
		Address:    types.DefaultAddressConfig(),
		Democracy: democracy.Config{
			LaunchPeriod:       28 * 14400,
			VotingPeriod:       28 * 14400,
			EnactmentDelay:     28 * 14400,
			LockPeriod:         28 * 14400,
			MinimumDeposit:     100_000_000_000,
			MaxStrength:        6,
			MaxDelegationDepth: 16,
			PreviewCacheSize:   256,
		},
		Time: timesync.Config{
			GenesisTime:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			BlockDuration: 6 * time.Second,
		},
		Metrics: metrics.DefaultConfig(),
		Genesis: DefaultGenesisConfig(),
		Logging: logging,
	}
}
