package device

// Signal is what the status LED shows.
type Signal int

const (
	SignalOff   Signal = iota
	SignalOK           // green: joined the network
	SignalError        // red: provisioning
)

func (s Signal) String() string {
	switch s {
	case SignalOK:
		return "ok"
	case SignalError:
		return "error"
	}
	return "off"
}

// RGB are the pins of a three-color LED.
type RGB struct {
	Red, Green, Blue int
}

// Indicator is the status LED.
type Indicator struct {
	pins Pins
	rgb  RGB
	curr Signal
}

// NewIndicator configures the LED pins as outputs.
func NewIndicator(pins Pins, rgb RGB) *Indicator {
	for _, p := range []int{rgb.Red, rgb.Green, rgb.Blue} {
		pins.Output(p)
	}
	return &Indicator{pins: pins, rgb: rgb}
}

// Set shows signal s; every other color is switched off.
func (ind *Indicator) Set(s Signal) {
	ind.pins.Write(ind.rgb.Red, s == SignalError)
	ind.pins.Write(ind.rgb.Green, s == SignalOK)
	ind.pins.Write(ind.rgb.Blue, false)
	ind.curr = s
}

// Current returns the signal last set.
func (ind *Indicator) Current() Signal {
	return ind.curr
}
