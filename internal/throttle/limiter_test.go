package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/telex-tui/telex-server/internal/core"
)

func TestLimiterAllowsBurstThenBlocks(t *testing.T) {
	limiter := NewLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(), "message %d within burst", i)
	}
	require.False(t, limiter.Allow())
}

func TestLimiterRefills(t *testing.T) {
	limiter := NewLimiter(2, 20*time.Millisecond)

	require.True(t, limiter.Allow())
	require.True(t, limiter.Allow())
	require.False(t, limiter.Allow())

	time.Sleep(30 * time.Millisecond)
	require.True(t, limiter.Allow())
}

func TestLimiterDefendsAgainstBadConfig(t *testing.T) {
	limiter := NewLimiter(0, 0)
	require.True(t, limiter.Allow())
	require.False(t, limiter.Allow())
}

func TestFilterTracksSendersIndependently(t *testing.T) {
	filter := Filter(1, time.Hour)

	require.Equal(t, core.FilterAllow, filter("alice", "one").Verdict)
	require.Equal(t, core.FilterBlock, filter("alice", "two").Verdict)

	// A different sender has its own bucket.
	require.Equal(t, core.FilterAllow, filter("bob", "one").Verdict)
}
