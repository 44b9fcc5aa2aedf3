package engine

import (
	"sync"
	"time"
)

// PausableClock is installation time: base time minus every paused interval
// While paused, Now stays at the instant the pause began
type PausableClock struct {
	mu sync.RWMutex

	base       TimeProvider
	paused     bool
	pauseStart time.Time     // Base time when the current pause began
	pausedFor  time.Duration // Sum of finished pauses
}

// NewPausableClock wraps base; nil uses the system clock
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	return &PausableClock{base: base}
}

func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Add(-pc.pausedFor)
	}
	return pc.base.Now().Add(-pc.pausedFor)
}

func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.base.Now()
}

func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.pausedFor += pc.base.Now().Sub(pc.pauseStart)
	pc.pauseStart = time.Time{}
	pc.paused = false
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration includes the pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.pausedFor
	if pc.paused {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
