package democracy

import "github.com/spacemeshos/go-democracy/metrics"

const subsystem = "engine"

var (
	bakedCounters = metrics.NewOutcomeCounters(
		"ballots_baked",
		subsystem,
		"Number of matured ballots by result",
		"result",
		"passed", "not_passed",
	)
	bakedPassed    = bakedCounters[0]
	bakedNotPassed = bakedCounters[1]

	votesCast = metrics.NewOutcomeCounters(
		"votes",
		subsystem,
		"Number of votes cast directly or by proxy",
		"kind",
		"direct", "proxy",
	)
	directVotes = votesCast[0]
	proxyVotes  = votesCast[1]

	enactments = metrics.NewOutcomeCounters(
		"enactments",
		subsystem,
		"Number of enactment attempts by outcome",
		"outcome",
		"ok", "failed",
	)
	enactmentsOK     = enactments[0]
	enactmentsFailed = enactments[1]

	tallyDuration = metrics.NewHistogramWithBuckets(
		"tally_duration",
		subsystem,
		"Duration of a tally in seconds",
		[]string{"kind"},
		metrics.TallyBuckets,
	)
	bakeDuration    = tallyDuration.WithLabelValues("bake")
	previewDuration = tallyDuration.WithLabelValues("preview")

	lastTick = metrics.NewGauge(
		"last_tick",
		subsystem,
		"Last processed height",
		[]string{},
	).WithLabelValues()

	previewCache = metrics.NewOutcomeCounters(
		"preview_cache",
		subsystem,
		"Tally preview cache lookups",
		"result",
		"hit", "miss",
	)
	previewHit  = previewCache[0]
	previewMiss = previewCache[1]
)
