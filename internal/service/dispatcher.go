package service

import (
	"context"
	"net/netip"

	"irrigator/internal/device"
	"irrigator/internal/logger"
	"irrigator/internal/models"
)

// Indicator shows the boot outcome.
type Indicator interface {
	Set(s device.Signal)
}

// AccessPoint starts the provisioning access point.
type AccessPoint interface {
	StartAccessPoint() (netip.Addr, error)
}

// Dispatcher configures the device for the outcome of the join attempt.
// It runs once per boot session; leaving a mode takes a reboot.
type Dispatcher struct {
	indicator Indicator
	ap        AccessPoint
	routes    RouteSets
	surface   Surface
	log       *logger.Logger
}

func NewDispatcher(indicator Indicator, ap AccessPoint, routes RouteSets, surface Surface, log *logger.Logger) *Dispatcher {
	return &Dispatcher{indicator: indicator, ap: ap, routes: routes, surface: surface, log: logger.OrNop(log)}
}

// Dispatch fixes s.Mode from s.Outcome and installs the matching route set.
func (d *Dispatcher) Dispatch(_ context.Context, s *models.Session) models.Mode {
	s.Mode = models.ModeFor(s.Outcome)

	switch s.Mode {
	case models.ModeOperational:
		d.indicator.Set(device.SignalOK)
		d.surface.Install(d.routes.Operational(s))
	default:
		d.indicator.Set(device.SignalError)
		if addr, err := d.ap.StartAccessPoint(); err == nil {
			s.LocalAddr = addr.String()
		}
		d.surface.Install(d.routes.Provisioning(s))
	}

	d.log.Infow("mode_dispatched", "session", s.Number, "outcome", s.Outcome.String(), "mode", s.Mode, "addr", s.LocalAddr)
	return s.Mode
}
