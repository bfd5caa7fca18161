package device

import (
	"errors"
	"net/netip"
	"sync"
	"time"

	"irrigator/internal/clock"
	"irrigator/internal/logger"
)

// LinkStatus is the station link state reported by the radio.
type LinkStatus int

const (
	LinkIdle LinkStatus = iota
	LinkConnecting
	LinkUp
	LinkFailed
)

// Radio is the wireless interface.
type Radio interface {
	// Configure sets a static station address and leaves access-point
	// mode. It fails synchronously when the interface rejects the
	// configuration.
	Configure(local, gateway, subnet netip.Addr) error
	// Join starts associating with a network; it does not wait for the link.
	Join(ssid, passphrase string) error
	Status() LinkStatus
	LocalAddr() netip.Addr
	// StartAccessPoint opens a local access point; an empty passphrase makes
	// it open.
	StartAccessPoint(ssid, passphrase string) (netip.Addr, error)
}

// errRejected is returned by SimRadio.Configure for unusable addresses.
var errRejected = errors.New("interface rejected configuration")

// DefaultAPAddr is the address the device takes in access-point mode.
var DefaultAPAddr = netip.MustParseAddr("192.168.4.1")

// SimRadio is the Radio for hosts without a wireless chip. Networks lists
// the reachable networks and their passphrases; a join to one of them brings
// the link up after JoinDelay.
type SimRadio struct {
	Networks  map[string]string
	JoinDelay time.Duration
	Clock     clock.Clock

	mu       sync.Mutex
	local    netip.Addr
	joinedAt time.Time
	status   LinkStatus
	apSSID   string
	log      *logger.Logger
}

// NewSimRadio creates a simulated radio.
func NewSimRadio(networks map[string]string, joinDelay time.Duration, log *logger.Logger) *SimRadio {
	return &SimRadio{
		Networks:  networks,
		JoinDelay: joinDelay,
		Clock:     clock.Real{},
		log:       logger.OrNop(log),
	}
}

func (r *SimRadio) Configure(local, gateway, subnet netip.Addr) error {
	if !local.Is4() || local.IsUnspecified() || !gateway.IsValid() || !subnet.IsValid() {
		return errRejected
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.local = local
	r.apSSID = ""
	return nil
}

func (r *SimRadio) Join(ssid, passphrase string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	want, ok := r.Networks[ssid]
	switch {
	case !ok:
		r.status = LinkFailed
	case want != passphrase:
		r.status = LinkFailed
	default:
		r.status = LinkConnecting
		r.joinedAt = r.Clock.Now()
	}
	r.log.Debugw("sim_radio_join", "ssid", ssid, "status", r.status)
	return nil
}

func (r *SimRadio) Status() LinkStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == LinkConnecting && r.Clock.Now().Sub(r.joinedAt) >= r.JoinDelay {
		r.status = LinkUp
	}
	return r.status
}

func (r *SimRadio) LocalAddr() netip.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.apSSID != "" {
		return DefaultAPAddr
	}
	return r.local
}

func (r *SimRadio) StartAccessPoint(ssid, passphrase string) (netip.Addr, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apSSID = ssid
	r.log.Infow("sim_radio_ap_started", "ssid", ssid, "open", passphrase == "")
	return DefaultAPAddr, nil
}
