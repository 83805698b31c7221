package clock

import (
	"sync/atomic"
	"time"
)

// TimeProvider is the time source for scheduled work
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the monotonic wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a wall-clock provider
func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// ManualTimeProvider moves only when told and never backwards, so deadlines taken
// from it stay ordered for the Scheduler
type ManualTimeProvider struct {
	start   time.Time
	elapsed atomic.Int64
}

// NewManualTimeProvider creates a provider frozen at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{start: start}
}

// Now returns start plus everything advanced so far
func (m *ManualTimeProvider) Now() time.Time {
	return m.start.Add(m.Elapsed())
}

// Elapsed returns the total advance since start
func (m *ManualTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.elapsed.Load())
}

// Advance moves time forward by d, non-positive d is ignored
func (m *ManualTimeProvider) Advance(d time.Duration) {
	if d > 0 {
		m.elapsed.Add(int64(d))
	}
}

// AdvanceTo moves time forward to t, typically a Task deadline
// Returns the distance moved, zero when t is not in the future
func (m *ManualTimeProvider) AdvanceTo(t time.Time) time.Duration {
	target := int64(t.Sub(m.start))
	for {
		cur := m.elapsed.Load()
		if target <= cur {
			return 0
		}
		if m.elapsed.CompareAndSwap(cur, target) {
			return time.Duration(target - cur)
		}
	}
}
