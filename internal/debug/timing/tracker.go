package timing

import (
	"context"
	"sort"
	"sync"
	"time"
)

type timingKey struct{}

type timingInfo struct {
	Operation string
	StartTime time.Time
}

// Tracker records how long each named stage takes across a session.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		now:     time.Now,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	if !tt.isEnabled() {
		return context.Background()
	}

	return context.WithValue(context.Background(), timingKey{}, timingInfo{
		Operation: operation,
		StartTime: tt.now(),
	})
}

func (tt *Tracker) EndTiming(ctx context.Context) {
	info, ok := ctx.Value(timingKey{}).(timingInfo)
	if !ok {
		return
	}

	duration := tt.now().Sub(info.StartTime)

	tt.mu.Lock()
	tt.timings[info.Operation] = append(tt.timings[info.Operation], duration)
	tt.mu.Unlock()
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Summary returns the average duration per operation, keyed by name.
func (tt *Tracker) Summary() map[string]time.Duration {
	tt.mu.RLock()
	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	tt.mu.RUnlock()
	sort.Strings(ops)

	summary := make(map[string]time.Duration, len(ops))
	for _, op := range ops {
		summary[op] = tt.GetAverageTime(op)
	}
	return summary
}

// SetEnabled switches recording on or off. A disabled tracker hands out
// contexts that EndTiming ignores.
func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}
