package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/spacemeshos/go-democracy/config"
	"github.com/spacemeshos/go-democracy/config/presets"
)

// AddFlags adds node flags that write directly into cfg. Returns the path of the config file.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	flagSet.StringVarP(&cfg.Preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "specify data directory for the node")
	flagSet.StringVar(&cfg.FileLock, "filelock",
		cfg.FileLock, "filesystem lock to prevent running more than one instance")
	flagSet.IntVar(&cfg.DatabaseConnections, "db-connections",
		cfg.DatabaseConnections, "number of pooled database connections")
	flagSet.BoolVar(&cfg.DatabaseLatencyMetering, "db-latency-metering",
		cfg.DatabaseLatencyMetering, "measure latency of every database query")
	flagSet.StringVar(&cfg.Logging.Encoder, "log-encoder",
		cfg.Logging.Encoder, "log as JSON instead of plain text")
	flagSet.StringVar(&cfg.Address.NetworkHRP, "network-hrp",
		cfg.Address.NetworkHRP, "human readable part of account addresses")

	/** ======================== Metrics Flags ========================== **/
	flagSet.BoolVar(&cfg.Metrics.Enable, "metrics",
		cfg.Metrics.Enable, "serve node metrics")
	flagSet.StringVar(&cfg.Metrics.Listen, "metrics-listen",
		cfg.Metrics.Listen, "address for the metrics server")

	/** ======================== Genesis Flags ========================== **/
	flagSet.StringVar(&cfg.Genesis.File, "genesis-file",
		cfg.Genesis.File, "path to a genesis json file")
	flagSet.VarP(NewStringToUint64Value(&cfg.Genesis.Accounts), "accounts", "a",
		"list of prefunded accounts")

	/** ======================== Time Flags ========================== **/
	flagSet.Var(NewTimeValue(&cfg.Time.GenesisTime), "genesis-time",
		"time of the genesis height in 2006-01-02T15:04:05Z07:00 format")
	flagSet.DurationVar(&cfg.Time.BlockDuration, "block-duration",
		cfg.Time.BlockDuration, "duration of a single height")

	/** ======================== Democracy Flags ========================== **/
	flagSet.Uint32Var(&cfg.Democracy.LaunchPeriod, "launch-period",
		cfg.Democracy.LaunchPeriod, "number of heights between proposal promotions")
	flagSet.Uint32Var(&cfg.Democracy.VotingPeriod, "voting-period",
		cfg.Democracy.VotingPeriod, "number of heights a promoted ballot is open for voting")
	flagSet.Uint32Var(&cfg.Democracy.EnactmentDelay, "enactment-delay",
		cfg.Democracy.EnactmentDelay, "number of heights between a passed ballot and its enactment")
	flagSet.Uint32Var(&cfg.Democracy.LockPeriod, "lock-period",
		cfg.Democracy.LockPeriod, "base period for conviction locks")
	flagSet.Uint64Var(&cfg.Democracy.MinimumDeposit, "minimum-deposit",
		cfg.Democracy.MinimumDeposit, "smallest deposit accepted for a public proposal")
	flagSet.IntVar(&cfg.Democracy.MaxDelegationDepth, "max-delegation-depth",
		cfg.Democracy.MaxDelegationDepth, "limit on delegation chain length while tallying")
	return configPath
}
