package clock

import "time"

// Clock is the engine's source of time for room activity and staleness
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC. Room timestamps round-trip through
// JSON storage, so they are kept in one location.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}
