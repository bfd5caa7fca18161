package service

import (
	"context"
	"net/netip"
	"time"

	"irrigator/internal/clock"
	"irrigator/internal/device"
	"irrigator/internal/logger"
	"irrigator/internal/models"
)

// ConnectorConfig holds the fixed parameters of the join attempt.
type ConnectorConfig struct {
	Timeout      time.Duration
	PollInterval time.Duration
	Gateway      netip.Addr
	Subnet       netip.Addr
}

// Connector makes the single bounded attempt to join the stored network.
type Connector struct {
	radio device.Radio
	clock clock.Clock
	cfg   ConnectorConfig
	log   *logger.Logger
}

func NewConnector(radio device.Radio, clk clock.Clock, cfg ConnectorConfig, log *logger.Logger) *Connector {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Connector{radio: radio, clock: clk, cfg: cfg, log: logger.OrNop(log)}
}

// Connect blocks until the link is up or the timeout elapses. Credentials
// without a network name or static address fail without touching the radio.
func (c *Connector) Connect(ctx context.Context, creds models.Credentials) models.ConnectionOutcome {
	if !creds.Usable() {
		c.log.Warnw("wifi_credentials_undefined", "ssid_set", creds.NetworkName != "", "ip_set", creds.StaticAddress != "")
		return models.Failed
	}

	local, err := netip.ParseAddr(creds.StaticAddress)
	if err != nil {
		c.log.Warnw("wifi_static_ip_invalid", "ip", creds.StaticAddress, "err", err)
		return models.Failed
	}
	if err := c.radio.Configure(local, c.cfg.Gateway, c.cfg.Subnet); err != nil {
		c.log.Warnw("wifi_configure_failed", "ip", local, "err", err)
		return models.Failed
	}
	if err := c.radio.Join(creds.NetworkName, creds.Passphrase); err != nil {
		c.log.Warnw("wifi_join_failed", "ssid", creds.NetworkName, "err", err)
		return models.Failed
	}
	c.log.Infow("wifi_connecting", "ssid", creds.NetworkName, "timeout", c.cfg.Timeout)

	up := clock.PollUntil(c.clock, c.cfg.Timeout, c.cfg.PollInterval, func() bool {
		return ctx.Err() != nil || c.radio.Status() == device.LinkUp
	})
	if !up || ctx.Err() != nil {
		c.log.Warnw("wifi_connect_failed", "ssid", creds.NetworkName, "timeout", c.cfg.Timeout)
		return models.Failed
	}
	c.log.Infow("wifi_connected", "ssid", creds.NetworkName, "ip", c.radio.LocalAddr())
	return models.Connected
}
