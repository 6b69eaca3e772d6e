package presets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	require.Equal(t, []string{"fastnet", "standalone", "testnet"}, Options())
	for _, name := range Options() {
		t.Run(name, func(t *testing.T) {
			conf, err := Get(name)
			require.NoError(t, err)
			require.NoError(t, conf.Democracy.Validate())
			require.Equal(t, "tdem", conf.Address.NetworkHRP)
			require.Positive(t, conf.Time.BlockDuration)
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := Get("mainnet")
	require.ErrorContains(t, err, "not registered")
	require.Panics(t, func() { register("fastnet", fastnet()) })
}
