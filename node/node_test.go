package node

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
)

func writeConfig(tb testing.TB, content string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "config.toml")
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("preset from file", func(t *testing.T) {
		path := writeConfig(t, `
preset = "standalone"

[democracy]
voting-period = 42

[logging]
engine = "warn"
`)
		cfg := config.MainnetConfig()
		require.NoError(t, LoadConfig(&cfg, "", path))
		require.Equal(t, "tdem", cfg.Address.NetworkHRP)
		require.EqualValues(t, 42, cfg.Democracy.VotingPeriod)
		require.EqualValues(t, 5, cfg.Democracy.LaunchPeriod)
		require.Equal(t, "warn", cfg.Logging.EngineLoggerLevel)
	})
	t.Run("preset from flag wins", func(t *testing.T) {
		path := writeConfig(t, `preset = "standalone"`)
		cfg := config.MainnetConfig()
		require.NoError(t, LoadConfig(&cfg, "fastnet", path))
		require.EqualValues(t, 20, cfg.Democracy.LaunchPeriod)
	})
	t.Run("durations and times", func(t *testing.T) {
		path := writeConfig(t, `
[time]
genesis-time = "2025-03-01T10:00:00Z"
block-duration = "3s"
`)
		cfg := config.MainnetConfig()
		require.NoError(t, LoadConfig(&cfg, "", path))
		require.Equal(t, 3*time.Second, cfg.Time.BlockDuration)
		require.True(t, cfg.Time.GenesisTime.Equal(time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)))
	})
	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, `
[democracy]
turnout-bias = 1
`)
		cfg := config.MainnetConfig()
		require.ErrorContains(t, LoadConfig(&cfg, "", path), "unmarshal config")
	})
	t.Run("unknown preset", func(t *testing.T) {
		cfg := config.MainnetConfig()
		require.Error(t, LoadConfig(&cfg, "devnet", ""))
	})
	t.Run("no file", func(t *testing.T) {
		cfg := config.MainnetConfig()
		require.NoError(t, LoadConfig(&cfg, "", ""))
		require.Equal(t, config.MainnetConfig().Democracy, cfg.Democracy)
	})
}

func TestDecodeLoggerLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.EngineLoggerLevel = "debug"
	lvl, err := decodeLoggerLevel(&cfg, EngineLogger)
	require.NoError(t, err)
	require.Equal(t, zap.DebugLevel, lvl.Level())

	lvl, err = decodeLoggerLevel(&cfg, "unknown")
	require.NoError(t, err)
	require.Equal(t, zap.InfoLevel, lvl.Level())

	cfg.Logging.LedgerLoggerLevel = "loud"
	_, err = decodeLoggerLevel(&cfg, LedgerLogger)
	require.Error(t, err)
}

func testConfig(tb testing.TB) *config.Config {
	tb.Helper()
	cfg := config.DefaultConfig()
	cfg.Address = types.DefaultTestAddressConfig()
	cfg.DataDirParent = tb.TempDir()
	cfg.FileLock = filepath.Join(cfg.DataDirParent, "LOCK")
	cfg.DatabaseConnections = 4
	cfg.Democracy.LaunchPeriod = 4
	cfg.Democracy.VotingPeriod = 4
	cfg.Democracy.EnactmentDelay = 2
	cfg.Democracy.LockPeriod = 2
	cfg.Time.BlockDuration = time.Second
	types.SetNetworkHRP(cfg.Address.NetworkHRP)
	tb.Cleanup(func() { types.SetNetworkHRP(types.DefaultAddressConfig().NetworkHRP) })
	return &cfg
}

func TestAppLock(t *testing.T) {
	cfg := testConfig(t)
	first := New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)))
	require.NoError(t, first.Lock())

	second := New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)))
	require.ErrorContains(t, second.Lock(), "only one node instance")

	first.Unlock()
	require.NoError(t, second.Lock())
	second.Unlock()
}

func TestAppInitialize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Democracy.MaxStrength = 0
	app := New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)))
	require.ErrorContains(t, app.Initialize(), "democracy config")

	cfg = testConfig(t)
	cfg.Genesis.Accounts = map[string]uint64{"bogus": 1}
	app = New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)))
	require.ErrorContains(t, app.Initialize(), "genesis config")
}

func TestAppRun(t *testing.T) {
	cfg := testConfig(t)
	alice := types.GenerateAddress([]byte("alice"))
	bob := types.GenerateAddress([]byte("bob"))
	carol := types.GenerateAddress([]byte("carol"))

	fs := afero.NewMemMapFs()
	genesis, err := json.Marshal(map[string]any{
		"accounts": map[string]uint64{alice.String(): 100, bob.String(): 50},
	})
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/genesis.json", genesis, 0o600))
	cfg.Genesis.File = "/genesis.json"
	cfg.Genesis.Accounts = map[string]uint64{bob.String(): 70, carol.String(): 30}
	cfg.Metrics.Enable = true
	cfg.Metrics.Listen = "127.0.0.1:0"

	clock := clockwork.NewFakeClock()
	cfg.Time.GenesisTime = clock.Now().Add(-10 * cfg.Time.BlockDuration)

	app := New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)), WithClock(clock), WithFs(fs))
	require.NoError(t, app.Initialize())
	require.NoError(t, app.Lock())
	t.Cleanup(app.Unlock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- app.Start(ctx)
	}()
	select {
	case <-app.Started():
	case err := <-errc:
		require.FailNow(t, "app failed to start", err)
	}

	for addr, expected := range map[types.Address]types.Amount{alice: 100, bob: 70, carol: 30} {
		stake, err := app.ledger.Stake(app.db, addr)
		require.NoError(t, err)
		require.Equal(t, expected, stake, addr)
	}

	lastTick := func(expected types.Height) func() bool {
		return func() bool {
			height, processed, err := app.Engine().LastTick()
			return err == nil && processed && height == expected
		}
	}
	require.Eventually(t, lastTick(10), time.Second, 10*time.Millisecond)

	clock.BlockUntil(1)
	clock.Advance(2 * cfg.Time.BlockDuration)
	require.Eventually(t, lastTick(12), time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "app didn't stop")
	}
	app.Cleanup()

	// genesis is not loaded twice and ticks continue after restart
	restarted := New(WithConfig(cfg), WithLog(zaptest.NewLogger(t)), WithClock(clock), WithFs(fs))
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	go func() {
		errc <- restarted.Start(ctx)
	}()
	<-restarted.Started()
	issuance, err := restarted.ledger.TotalIssuance(restarted.db)
	require.NoError(t, err)
	require.Equal(t, types.Amount(200), issuance)
	height, processed, err := restarted.Engine().LastTick()
	require.NoError(t, err)
	require.True(t, processed)
	require.GreaterOrEqual(t, height, types.Height(12))
	cancel()
	require.NoError(t, <-errc)
	restarted.Cleanup()
}
