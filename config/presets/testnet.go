package presets

import (
	"time"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := config.MainnetConfig()
	conf.Address = types.DefaultTestAddressConfig()

	conf.Democracy.LaunchPeriod = 1200
	conf.Democracy.VotingPeriod = 1200
	conf.Democracy.EnactmentDelay = 600
	conf.Democracy.LockPeriod = 600
	conf.Democracy.MinimumDeposit = 1_000_000

	conf.Time.GenesisTime = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	return conf
}
