package presets

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/config"
)

func init() {
	register("standalone", standalone())
}

func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.Address = types.DefaultTestAddressConfig()

	conf.DataDirParent = filepath.Join(os.TempDir(), "democracy")
	conf.FileLock = filepath.Join(conf.DataDirParent, "LOCK")

	conf.Democracy.LaunchPeriod = 5
	conf.Democracy.VotingPeriod = 5
	conf.Democracy.EnactmentDelay = 2
	conf.Democracy.LockPeriod = 2
	conf.Democracy.MinimumDeposit = 1
	conf.Democracy.PreviewCacheSize = 16

	conf.Time.GenesisTime = time.Now().Add(5 * time.Second).Truncate(time.Second)
	conf.Time.BlockDuration = 500 * time.Millisecond

	conf.Logging.EngineLoggerLevel = "debug"
	conf.Logging.EnactmentLoggerLevel = "debug"
	conf.Logging.EventsLoggerLevel = "debug"
	return conf
}
