package engine

import "time"

// startScheduler holds the single pending "start next reveal" deadline
// Arming replaces any earlier deadline, so a reset or mode switch never
// leaves a stale start behind
type startScheduler struct {
	at    time.Time
	armed bool
}

func (s *startScheduler) Arm(at time.Time) {
	s.at, s.armed = at, true
}

func (s *startScheduler) Cancel() {
	s.at, s.armed = time.Time{}, false
}

// Due reports whether the deadline has passed and disarms it if so
func (s *startScheduler) Due(now time.Time) bool {
	if !s.armed || now.Before(s.at) {
		return false
	}
	s.armed = false
	return true
}

func (s *startScheduler) Pending() (time.Time, bool) {
	return s.at, s.armed
}
