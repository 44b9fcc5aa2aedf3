package engine

import (
	"sync/atomic"
	"time"
)

// TimeProvider is the clock the installation reads once per frame
// Implementations must be non-decreasing within a process lifetime
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// Pauser is implemented by clocks that can freeze time
type Pauser interface {
	Pause()
	Resume()
	IsPaused() bool
}

// MockTimeProvider is a manually driven clock for tests and offline rendering
// Time is the origin plus an atomically stepped offset
type MockTimeProvider struct {
	origin  time.Time
	elapsed atomic.Int64
}

func NewMockTimeProvider(origin time.Time) *MockTimeProvider {
	return &MockTimeProvider{origin: origin}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.origin.Add(m.Elapsed())
}

// Elapsed returns the offset from the origin
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.elapsed.Load())
}

// SetTime jumps the clock; callers keep it non-decreasing
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.elapsed.Store(int64(t.Sub(m.origin)))
}

func (m *MockTimeProvider) Advance(d time.Duration) {
	m.elapsed.Add(int64(d))
}
