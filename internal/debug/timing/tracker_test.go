package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerRecordsDurations(t *testing.T) {
	tt := NewTracker()
	clock := time.Unix(0, 0)
	tt.now = func() time.Time { return clock }

	ctx := tt.StartTiming("classify")
	clock = clock.Add(30 * time.Millisecond)
	tt.EndTiming(ctx)

	ctx = tt.StartTiming("classify")
	clock = clock.Add(10 * time.Millisecond)
	tt.EndTiming(ctx)

	assert.Equal(t, []time.Duration{30 * time.Millisecond, 10 * time.Millisecond}, tt.GetTimings("classify"))
	assert.Equal(t, 20*time.Millisecond, tt.GetAverageTime("classify"))
	assert.Equal(t, map[string]time.Duration{"classify": 20 * time.Millisecond}, tt.Summary())
}

func TestTrackerDisabled(t *testing.T) {
	tt := NewTracker()
	tt.SetEnabled(false)

	tt.EndTiming(tt.StartTiming("load"))
	assert.Nil(t, tt.GetTimings("load"))
	assert.Zero(t, tt.GetAverageTime("load"))

	tt.EndTiming(context.Background())
	assert.Empty(t, tt.Summary())
}
