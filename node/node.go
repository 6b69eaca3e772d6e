// Package node contains the governance node application and its command.
package node

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/cmd"
	"github.com/spacemeshos/go-democracy/config"
	"github.com/spacemeshos/go-democracy/config/presets"
	"github.com/spacemeshos/go-democracy/log"
)

// Logger names.
const (
	AppLogger       = "app"
	EngineLogger    = "engine"
	LedgerLogger    = "ledger"
	EnactmentLogger = "enactment"
	EventsLogger    = "events"
	DatabaseLogger  = "database"
	ClockLogger     = "clock"
	MetricsLogger   = "metrics"
)

// GetCommand returns the command that runs a node.
func GetCommand() *cobra.Command {
	conf := config.MainnetConfig()
	var configPath *string
	c := &cobra.Command{
		Use:   "govnode",
		Short: "start governance node",
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}

			app := New(
				WithConfig(&conf),
				// child loggers can only raise the level, so the root one is at debug.
				WithLog(log.NewWithLevel("node", zap.NewAtomicLevelAt(zap.DebugLevel))),
			)

			// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := app.Initialize(); err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}
			if err := app.Lock(); err != nil {
				return fmt.Errorf("getting exclusive file lock: %w", err)
			}
			defer app.Unlock()

			// Don't print usage on error from this point forward
			c.SilenceUsage = true

			// This blocks until the context is finished or until an error is produced
			err := app.Start(ctx)
			app.Cleanup()
			return err
		},
	}

	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)

	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println(cmd.Version)
		},
	})
	return c
}

func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	preset := conf.Preset // might be set via CLI flag
	if err := LoadConfig(conf, preset, configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// apply CLI args to config
	if err := c.ParseFlags(os.Args[1:]); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if conf.Logging.Encoder == config.JSONLogEncoder {
		log.JSONLog(true)
	}
	return nil
}

// LoadConfig loads config and preset (if provided) into the provided config.
// It first loads the preset and then overrides it with values from the config file.
func LoadConfig(cfg *config.Config, preset, path string) error {
	v := viper.New()
	if err := config.LoadConfig(path, v); err != nil {
		return err
	}
	return decodeConfig(cfg, preset, v)
}

func decodeConfig(cfg *config.Config, preset string, v *viper.Viper) error {
	// override default config with preset if provided
	if len(preset) == 0 && v.IsSet("preset") {
		preset = v.GetString("preset")
	}
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		*cfg = p
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}

func decodeLoggerLevel(cfg *config.Config, name string) (zap.AtomicLevel, error) {
	loggers := map[string]string{}
	if err := mapstructure.Decode(cfg.Logging, &loggers); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}
	lvl, err := log.ParseLevel(loggers[name])
	if err != nil {
		return zap.AtomicLevel{}, errors.Join(fmt.Errorf("cannot parse logging for %v", name), err)
	}
	return lvl, nil
}
