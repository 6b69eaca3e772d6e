package ledger

import "github.com/spacemeshos/go-democracy/metrics"

const subsystem = "ledger"

var issuanceGauge = metrics.NewGauge(
	"issuance",
	subsystem,
	"Total issuance of the ledger",
	[]string{},
).WithLabelValues()
