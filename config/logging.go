package config

import "go.uber.org/zap/zapcore"

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = "json"
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder              LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel       string     `mapstructure:"app"`
	EngineLoggerLevel    string     `mapstructure:"engine"`
	LedgerLoggerLevel    string     `mapstructure:"ledger"`
	EnactmentLoggerLevel string     `mapstructure:"enactment"`
	EventsLoggerLevel    string     `mapstructure:"events"`
	DatabaseLoggerLevel  string     `mapstructure:"database"`
	ClockLoggerLevel     string     `mapstructure:"clock"`
	MetricsLoggerLevel   string     `mapstructure:"metrics"`
}

// DefaultLoggingConfig logs everything at info level as plain text.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:              ConsoleLogEncoder,
		AppLoggerLevel:       defaultLoggingLevel.String(),
		EngineLoggerLevel:    defaultLoggingLevel.String(),
		LedgerLoggerLevel:    defaultLoggingLevel.String(),
		EnactmentLoggerLevel: defaultLoggingLevel.String(),
		EventsLoggerLevel:    zapcore.WarnLevel.String(),
		DatabaseLoggerLevel:  defaultLoggingLevel.String(),
		ClockLoggerLevel:     zapcore.WarnLevel.String(),
		MetricsLoggerLevel:   defaultLoggingLevel.String(),
	}
}
