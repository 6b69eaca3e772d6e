package enactment

import "github.com/spacemeshos/go-democracy/metrics"

const subsystem = "enactment"

var enacted = metrics.NewCounter(
	"enacted",
	subsystem,
	"Number of enacted proposals by kind and outcome",
	[]string{"kind", "outcome"},
)
