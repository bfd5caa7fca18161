package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"irrigator/internal/device"

	"github.com/spf13/pflag"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"), nil)
	if err == nil {
		// an explicit path that does not exist is a read error
		t.Fatalf("expected error for explicit missing file, got %+v", cfg)
	}

	t.Chdir(t.TempDir())
	cfg, err = Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WiFi.ConnectTimeout != 10*time.Second {
		t.Fatalf("connect_timeout=%v", cfg.WiFi.ConnectTimeout)
	}
	if cfg.Readings.Interval != 30*time.Second {
		t.Fatalf("readings.interval=%v", cfg.Readings.Interval)
	}
	if cfg.Provision.RebootDelay != 3*time.Second {
		t.Fatalf("reboot_delay=%v", cfg.Provision.RebootDelay)
	}
	if cfg.Relay.RequestTimeout != 2*time.Second {
		t.Fatalf("relay.request_timeout=%v", cfg.Relay.RequestTimeout)
	}
	if cfg.Gateway().String() != "192.168.1.1" || cfg.Subnet().String() != "255.255.0.0" {
		t.Fatalf("gateway/subnet=%v/%v", cfg.Gateway(), cfg.Subnet())
	}
	if cfg.APSSID() != "ESP-WIFI-MANAGER" {
		t.Fatalf("APSSID()=%q", cfg.APSSID())
	}
	if got := cfg.Readings.Fallback["humidity"]; got != 13 {
		t.Fatalf("fallback humidity=%v", got)
	}
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := []byte("profile: relay\nwifi:\n  connect_timeout: 4s\nrelay:\n  pins: [1, 2]\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IRRIGATOR_READINGS_INTERVAL", "5s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "80", "")
	if err := flags.Parse([]string{"--port", "8080"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != ProfileRelay || cfg.APSSID() != "ConfigureDevice" {
		t.Fatalf("profile=%q ap=%q", cfg.Profile, cfg.APSSID())
	}
	if cfg.WiFi.ConnectTimeout != 4*time.Second {
		t.Fatalf("connect_timeout=%v", cfg.WiFi.ConnectTimeout)
	}
	if len(cfg.Relay.Pins) != 2 {
		t.Fatalf("relay.pins=%v", cfg.Relay.Pins)
	}
	if cfg.Readings.Interval != 5*time.Second {
		t.Fatalf("env override not applied: %v", cfg.Readings.Interval)
	}
	if cfg.Port != "8080" {
		t.Fatalf("flag override not applied: %q", cfg.Port)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() Config {
		return Config{
			Profile:   ProfileFull,
			WiFi:      WiFiConfig{ConnectTimeout: time.Second, Gateway: "192.168.1.1", Subnet: "255.255.0.0"},
			Readings:  ReadingsConfig{Interval: time.Second},
			Relay:     RelayConfig{Pins: []int{1}, RequestTimeout: time.Second},
			Provision: ProvisionConfig{RebootDelay: time.Second},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad profile", func(c *Config) { c.Profile = "other" }},
		{"zero timeout", func(c *Config) { c.WiFi.ConnectTimeout = 0 }},
		{"bad gateway", func(c *Config) { c.WiFi.Gateway = "nope" }},
		{"bad subnet", func(c *Config) { c.WiFi.Subnet = "" }},
		{"zero interval", func(c *Config) { c.Readings.Interval = 0 }},
		{"no relay pins", func(c *Config) { c.Relay.Pins = nil }},
	}
	ok := base()
	if err := ok.Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoad_ShippedConfigJoinsExampleNetwork(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	networks := cfg.WiFi.Networks()
	if got, ok := networks["MyNet"]; !ok || got != "secret" {
		t.Fatalf("simulated networks = %v, want MyNet:secret", networks)
	}

	radio := device.NewSimRadio(networks, 0, nil)
	if err := radio.Join("MyNet", "secret"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if st := radio.Status(); st != device.LinkUp {
		t.Fatalf("Status() = %v, want LinkUp", st)
	}
}

func TestValidate_EmptySimulatedSSID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := []byte("wifi:\n  simulated_networks:\n    - passphrase: x\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected error for network without ssid")
	}
}
