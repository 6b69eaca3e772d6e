package events

import "github.com/spacemeshos/go-democracy/metrics"

const subsystem = "events"

var (
	published = metrics.NewCounter(
		"published",
		subsystem,
		"Number of published events",
		[]string{"name"},
	)
	dropped = metrics.NewCounter(
		"dropped",
		subsystem,
		"Number of events dropped for a slow subscriber",
		[]string{"name"},
	)
)
