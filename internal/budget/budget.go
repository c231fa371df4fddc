// Package budget implements the cooperative-suspension clock used by both
// indexing phases.
//
// The engine is externally time-boxed by its host: it must voluntarily
// checkpoint and exit before the imposed limit and rely on being re-invoked
// later. A Clock is started once per phase and polled at the phase's yield
// points (between elements while gathering, between tags and entries while
// writing). Suspension decisions live with the caller; the clock only
// answers whether the budget is spent.
package budget

import "time"

// Clock measures elapsed wall-clock time against a fixed budget.
type Clock struct {
	start time.Time
	limit time.Duration
	now   func() time.Time
}

// NewClock starts a clock with the given budget. A non-positive limit means
// the budget never expires.
func NewClock(limit time.Duration) *Clock {
	return NewClockWithNow(limit, time.Now)
}

// NewClockWithNow starts a clock with an injected time source. Tests use
// this to force suspensions deterministically.
func NewClockWithNow(limit time.Duration, now func() time.Time) *Clock {
	return &Clock{start: now(), limit: limit, now: now}
}

// Expired reports whether the budget has been spent. A nil clock never
// expires, so phases can run unbudgeted.
func (c *Clock) Expired() bool {
	if c == nil || c.limit <= 0 {
		return false
	}
	return c.now().Sub(c.start) >= c.limit
}

// Elapsed returns the time consumed since the clock started.
func (c *Clock) Elapsed() time.Duration {
	if c == nil {
		return 0
	}
	return c.now().Sub(c.start)
}
