package models

import (
	"sync/atomic"
	"time"
)

// ConnectionOutcome is the result of the single join attempt made at boot.
type ConnectionOutcome int

const (
	Failed ConnectionOutcome = iota
	Connected
)

func (o ConnectionOutcome) String() string {
	if o == Connected {
		return "connected"
	}
	return "failed"
}

// Mode is the route-set configuration chosen for a boot session.
type Mode string

const (
	ModeOperational  Mode = "operational"
	ModeProvisioning Mode = "provisioning"
)

// ModeFor maps a connection outcome to the mode it selects.
func ModeFor(o ConnectionOutcome) Mode {
	if o == Connected {
		return ModeOperational
	}
	return ModeProvisioning
}

// Session is the state of one boot. It is created once at startup, filled in
// by the boot sequence and read by the components afterwards. Outcome and
// Mode never change once set.
type Session struct {
	Number      int
	StartedAt   time.Time
	Credentials Credentials
	Outcome     ConnectionOutcome
	Mode        Mode
	// LocalAddr is the station address when connected, the access point
	// address when provisioning.
	LocalAddr string

	ticks atomic.Uint64
}

// NewSession starts boot session number n.
func NewSession(n int, now time.Time) *Session {
	return &Session{Number: n, StartedAt: now}
}

// Tick advances the publish counter and returns the new value.
func (s *Session) Tick() uint64 {
	return s.ticks.Add(1)
}

// Ticks returns the number of publishes so far.
func (s *Session) Ticks() uint64 {
	return s.ticks.Load()
}
