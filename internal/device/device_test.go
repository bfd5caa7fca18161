package device

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"irrigator/internal/clock"
)

func TestIndicator_SetDrivesExactlyOneColor(t *testing.T) {
	pins := NewHostPins(nil)
	ind := NewIndicator(pins, RGB{Red: 32, Green: 33, Blue: 25})

	ind.Set(SignalOK)
	if pins.Level(32) || !pins.Level(33) || pins.Level(25) {
		t.Fatal("ok must be green only")
	}
	ind.Set(SignalError)
	if !pins.Level(32) || pins.Level(33) || pins.Level(25) {
		t.Fatal("error must be red only")
	}
	if ind.Current() != SignalError {
		t.Fatalf("Current()=%v", ind.Current())
	}
}

func TestRelays_SetAndBounds(t *testing.T) {
	pins := NewHostPins(nil)
	r := NewRelays(pins, []int{36, 39, 34, 35})
	if r.Count() != 4 {
		t.Fatalf("Count()=%d", r.Count())
	}
	if err := r.Set(2, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !pins.Level(39) || !r.On(2) {
		t.Fatal("relay 2 should be on")
	}
	if err := r.Set(0, true); !errors.Is(err, ErrNoSuchRelay) {
		t.Fatalf("expected ErrNoSuchRelay, got %v", err)
	}
	if err := r.Set(5, true); !errors.Is(err, ErrNoSuchRelay) {
		t.Fatalf("expected ErrNoSuchRelay, got %v", err)
	}
}

func TestRestart_CollapsesPendingRequests(t *testing.T) {
	r := NewRestart()
	r.Reboot("first")
	r.Reboot("second")
	if got := <-r.Requests(); got != "first" {
		t.Fatalf("got %q", got)
	}
	select {
	case got := <-r.Requests():
		t.Fatalf("unexpected second request %q", got)
	default:
	}
}

func TestSimRadio_JoinAfterDelay(t *testing.T) {
	fc := clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	r := NewSimRadio(map[string]string{"MyNet": "secret"}, 2*time.Second, nil)
	r.Clock = fc

	if err := r.Configure(netip.MustParseAddr("192.168.1.50"), netip.MustParseAddr("192.168.1.1"), netip.MustParseAddr("255.255.0.0")); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	_ = r.Join("MyNet", "secret")
	if r.Status() != LinkConnecting {
		t.Fatalf("status=%v, want connecting", r.Status())
	}
	fc.Advance(2 * time.Second)
	if r.Status() != LinkUp {
		t.Fatalf("status=%v, want up", r.Status())
	}
	if r.LocalAddr().String() != "192.168.1.50" {
		t.Fatalf("LocalAddr=%v", r.LocalAddr())
	}
}

func TestSimRadio_WrongPassphraseFails(t *testing.T) {
	r := NewSimRadio(map[string]string{"MyNet": "secret"}, 0, nil)
	_ = r.Join("MyNet", "nope")
	if r.Status() != LinkFailed {
		t.Fatalf("status=%v, want failed", r.Status())
	}
}

func TestSimRadio_RejectsUnspecifiedAddress(t *testing.T) {
	r := NewSimRadio(nil, 0, nil)
	err := r.Configure(netip.IPv4Unspecified(), netip.MustParseAddr("192.168.1.1"), netip.MustParseAddr("255.255.0.0"))
	if err == nil {
		t.Fatal("expected rejection")
	}
}
