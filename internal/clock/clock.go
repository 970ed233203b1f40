// Package clock provides an injectable time source so trend bucketing and
// schedule rollover are deterministic under test.
package clock

import "time"

// Clock supplies the current time to every engine entry point.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a settable instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the pinned instant forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }
