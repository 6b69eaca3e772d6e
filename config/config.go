// Package config contains go-democracy node configuration definitions.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/democracy"
	"github.com/spacemeshos/go-democracy/filesystem"
	"github.com/spacemeshos/go-democracy/metrics"
	"github.com/spacemeshos/go-democracy/timesync"
)

const (
	defaultDataDirName = "democracy"
	// DatabaseFile is the name of the state database in the data directory.
	DatabaseFile = "state.sql"
)

var defaultDataDir = filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName)

// Config defines the top level configuration of a node.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Preset     string              `mapstructure:"preset"`
	Address    types.AddressConfig `mapstructure:"address"`
	Democracy  democracy.Config    `mapstructure:"democracy"`
	Time       timesync.Config     `mapstructure:"time"`
	Metrics    metrics.Config      `mapstructure:"metrics"`
	Genesis    GenesisConfig       `mapstructure:"genesis"`
	Logging    LoggerConfig        `mapstructure:"logging"`
}

// BaseConfig defines paths and database settings.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	FileLock      string `mapstructure:"filelock"`
	ConfigFile    string `mapstructure:"config"`

	DatabaseConnections     int  `mapstructure:"db-connections"`
	DatabaseLatencyMetering bool `mapstructure:"db-latency-metering"`
}

// DataDir returns the canonical path of the data directory.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// DatabasePath returns the path of the state database.
func (cfg *Config) DatabasePath() string {
	return filepath.Join(cfg.DataDir(), DatabaseFile)
}

// DefaultConfig returns the default configuration of a node.
func DefaultConfig() Config {
	return Config{
		BaseConfig: DefaultBaseConfig(),
		Address:    types.DefaultAddressConfig(),
		Democracy:  democracy.DefaultConfig(),
		Time:       timesync.DefaultConfig(),
		Metrics:    metrics.DefaultConfig(),
		Genesis:    DefaultGenesisConfig(),
		Logging:    DefaultLoggingConfig(),
	}
}

// DefaultBaseConfig returns default paths under the user home directory.
func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		DataDirParent:       defaultDataDir,
		FileLock:            filepath.Join(defaultDataDir, "LOCK"),
		DatabaseConnections: 16,
	}
}

// LoadConfig reads the config file into viper. Empty location is not an error,
// defaults and flags are used in that case.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		return nil
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}
