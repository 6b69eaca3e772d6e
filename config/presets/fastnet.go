package presets

import (
	"time"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
)

func init() {
	register("fastnet", fastnet())
}

func fastnet() config.Config {
	conf := config.DefaultConfig()
	conf.Address = types.DefaultTestAddressConfig()

	conf.Democracy.LaunchPeriod = 20
	conf.Democracy.VotingPeriod = 20
	conf.Democracy.EnactmentDelay = 10
	conf.Democracy.LockPeriod = 10
	conf.Democracy.MinimumDeposit = 10

	conf.Time.BlockDuration = time.Second
	conf.Metrics.Enable = true
	return conf
}
