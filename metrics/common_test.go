package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestOutcomeCounters(t *testing.T) {
	counters := NewOutcomeCounters("test_outcomes", "metrics", "outcomes used by tests", "outcome", "ok", "failed")
	require.Len(t, counters, 2)
	counters[0].Inc()
	counters[1].Add(2)
	require.Equal(t, 1.0, testutil.ToFloat64(counters[0]))
	require.Equal(t, 2.0, testutil.ToFloat64(counters[1]))
	require.Equal(t, 2, testutil.CollectAndCount(counters[0])+testutil.CollectAndCount(counters[1]))
}

func TestTallyBuckets(t *testing.T) {
	require.Len(t, TallyBuckets, 14)
	require.InDelta(t, 0.0005, TallyBuckets[0], 1e-12)
	for i := 1; i < len(TallyBuckets); i++ {
		require.Greater(t, TallyBuckets[i], TallyBuckets[i-1])
	}
}
