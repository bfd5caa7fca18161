package device

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoSuchRelay is returned for relay ids outside 1..N.
var ErrNoSuchRelay = errors.New("no such relay")

// Relays is a bank of relay outputs addressed 1..N.
type Relays struct {
	mu    sync.Mutex
	pins  Pins
	ids   []int
	state []bool
}

// NewRelays configures every relay pin as output and drives it low.
func NewRelays(pins Pins, relayPins []int) *Relays {
	r := &Relays{pins: pins, ids: relayPins, state: make([]bool, len(relayPins))}
	for _, p := range relayPins {
		pins.Output(p)
		pins.Write(p, false)
	}
	return r
}

// Count returns the number of relays.
func (r *Relays) Count() int {
	return len(r.ids)
}

// Set switches relay id (1-based).
func (r *Relays) Set(id int, on bool) error {
	if id < 1 || id > len(r.ids) {
		return fmt.Errorf("relay %d: %w", id, ErrNoSuchRelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins.Write(r.ids[id-1], on)
	r.state[id-1] = on
	return nil
}

// On reports whether relay id is switched on.
func (r *Relays) On(id int) bool {
	if id < 1 || id > len(r.ids) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state[id-1]
}
