// Package log builds the zap loggers used by the node and command line tools.
package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

var (
	mu         sync.RWMutex
	jsonFormat bool
)

// JSONLog turns JSON format on or off for loggers created afterwards.
func JSONLog(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonFormat = enabled
}

func encoder() zapcore.Encoder {
	mu.RLock()
	defer mu.RUnlock()
	if jsonFormat {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

// NewNop creates silent logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(module string, level zap.AtomicLevel, hooks ...func(zapcore.Entry) error) *zap.Logger {
	return NewWithWriter(logWriter, module, level, hooks...)
}

// NewWithWriter is like NewWithLevel but writes entries to w.
func NewWithWriter(w io.Writer, module string, level zap.AtomicLevel, hooks ...func(zapcore.Entry) error) *zap.Logger {
	core := zapcore.NewCore(encoder(), zapcore.AddSync(w), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(module)
}

// ParseLevel parses level name (debug, info, warn, error) into an atomic level.
// Empty name defaults to info.
func ParseLevel(name string) (zap.AtomicLevel, error) {
	if name == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	return zap.ParseAtomicLevel(name)
}
