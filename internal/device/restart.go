package device

// Rebooter restarts the device.
type Rebooter interface {
	Reboot(reason string)
}

// Restart is the in-process Rebooter: the boot loop waits on Requests and
// runs a fresh boot session when one arrives.
type Restart struct {
	ch chan string
}

// NewRestart creates a restart signal.
func NewRestart() *Restart {
	return &Restart{ch: make(chan string, 1)}
}

// Reboot requests a restart. Requests made while one is pending collapse.
func (r *Restart) Reboot(reason string) {
	select {
	case r.ch <- reason:
	default:
	}
}

// Requests delivers restart reasons.
func (r *Restart) Requests() <-chan string {
	return r.ch
}
