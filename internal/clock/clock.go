// Package clock abstracts time for the blocking parts of the boot path so
// their timeouts can be driven by a fake clock in tests.
package clock

import "time"

// Clock tells time and sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// PollUntil calls cond until it returns true or timeout elapses. The
// deadline is computed once from c.Now(); every miss sleeps for pause before
// the next check. It returns true as soon as cond does.
func PollUntil(c Clock, timeout, pause time.Duration, cond func() bool) bool {
	deadline := c.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if !c.Now().Before(deadline) {
			return false
		}
		c.Sleep(pause)
	}
}
