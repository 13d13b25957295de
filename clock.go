package bough

import "time"

// Clock provides frame time for the renderer. Readings must be monotonic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (with Go's monotonic reading attached).
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a clock that only moves when told to. It drives headless
// rendering at a fixed frame rate and makes transition timing deterministic
// in tests. Not safe for concurrent use.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock starting at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}
