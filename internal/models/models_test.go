package models

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCredentials_Usable(t *testing.T) {
	cases := []struct {
		name string
		c    Credentials
		want bool
	}{
		{"all empty", Credentials{}, false},
		{"no ip", Credentials{NetworkName: "net"}, false},
		{"no ssid", Credentials{StaticAddress: "192.168.1.50"}, false},
		{"open network", Credentials{NetworkName: "net", StaticAddress: "192.168.1.50"}, true},
		{"full", Credentials{NetworkName: "net", Passphrase: "x", StaticAddress: "192.168.1.50"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Usable(); got != tc.want {
				t.Fatalf("Usable()=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestCredentials_GetSet(t *testing.T) {
	var c Credentials
	for i, f := range Fields {
		c.Set(f, string(rune('a'+i)))
	}
	if c.NetworkName != "a" || c.Passphrase != "b" || c.StaticAddress != "c" {
		t.Fatalf("unexpected credentials: %+v", c)
	}
	for i, f := range Fields {
		if got := c.Get(f); got != string(rune('a'+i)) {
			t.Fatalf("Get(%s)=%q", f, got)
		}
	}
}

func TestModeFor(t *testing.T) {
	if ModeFor(Connected) != ModeOperational {
		t.Fatal("connected must select operational mode")
	}
	if ModeFor(Failed) != ModeProvisioning {
		t.Fatal("failed must select provisioning mode")
	}
}

func TestSession_TickMonotonic(t *testing.T) {
	s := NewSession(1, testNow)
	var last uint64
	for range 5 {
		n := s.Tick()
		if n <= last {
			t.Fatalf("tick went from %d to %d", last, n)
		}
		last = n
	}
	if s.Ticks() != 5 {
		t.Fatalf("Ticks()=%d", s.Ticks())
	}
}
