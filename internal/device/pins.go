package device

import (
	"sync"

	"irrigator/internal/logger"
)

// Pins drives digital outputs. Implementations talk to the GPIO controller;
// HostPins only remembers levels.
type Pins interface {
	Output(pin int)
	Write(pin int, high bool)
}

// HostPins is the Pins implementation for hosts without GPIO. It records the
// last level written per pin so state can be inspected.
type HostPins struct {
	mu     sync.Mutex
	levels map[int]bool
	log    *logger.Logger
}

// NewHostPins creates an in-memory pin bank.
func NewHostPins(log *logger.Logger) *HostPins {
	return &HostPins{levels: make(map[int]bool), log: logger.OrNop(log)}
}

// Output configures pin as output (driven low).
func (p *HostPins) Output(pin int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.levels[pin]; !ok {
		p.levels[pin] = false
	}
}

// Write sets the pin level.
func (p *HostPins) Write(pin int, high bool) {
	p.mu.Lock()
	p.levels[pin] = high
	p.mu.Unlock()
	p.log.Debugw("pin_write", "pin", pin, "high", high)
}

// Level returns the last level written to pin.
func (p *HostPins) Level(pin int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[pin]
}
