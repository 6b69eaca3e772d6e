package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestJSONLog(t *testing.T) {
	JSONLog(true)
	t.Cleanup(func() { JSONLog(false) })

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "tally", zap.NewAtomicLevelAt(zapcore.InfoLevel))
	logger.Info("baked", zap.Uint32("ballot", 7))
	logger.Debug("filtered")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "baked", entry["msg"])
	require.Equal(t, "tally", entry["logger"])
	require.EqualValues(t, 7, entry["ballot"])
}

func TestHooks(t *testing.T) {
	var entries []zapcore.Entry
	logger := NewWithWriter(&bytes.Buffer{}, "", zap.NewAtomicLevelAt(zapcore.WarnLevel),
		func(e zapcore.Entry) error {
			entries = append(entries, e)
			return nil
		})
	logger.Info("skipped")
	logger.Warn("kept")
	require.Len(t, entries, 1)
	require.Equal(t, "kept", entries[0].Message)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl.Level())

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl.Level())

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
