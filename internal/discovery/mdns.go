// Package discovery advertises the device on the local network over mDNS.
package discovery

import (
	"context"
	"fmt"
	"strconv"

	"irrigator/internal/logger"
	"irrigator/internal/models"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type the dashboard is advertised as.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain.
	ServiceDomain = "local."
)

// registerFunc matches zeroconf.Register.
type registerFunc func(instance, service, domain string, port int, text []string) (shutdowner, error)

type shutdowner interface {
	Shutdown()
}

// Advertiser publishes the dashboard while a session is operational.
type Advertiser struct {
	Instance string
	Version  string

	register registerFunc
	log      *logger.Logger
}

// NewAdvertiser creates an advertiser for the given instance name.
func NewAdvertiser(instance, version string, log *logger.Logger) *Advertiser {
	return &Advertiser{
		Instance: instance,
		Version:  version,
		register: func(instance, service, domain string, port int, text []string) (shutdowner, error) {
			return zeroconf.Register(instance, service, domain, port, text, nil)
		},
		log: logger.OrNop(log),
	}
}

// TXTRecords describes session s in the advertisement.
func TXTRecords(s *models.Session, version string) []string {
	txt := []string{
		"path=/",
		"events=/events",
		"mode=" + string(s.Mode),
		"session=" + strconv.Itoa(s.Number),
	}
	if version != "" {
		txt = append(txt, "version="+version)
	}
	if s.LocalAddr != "" {
		txt = append(txt, "ip="+s.LocalAddr)
	}
	return txt
}

// Advertise registers the service on port and keeps it registered until
// ctx is canceled.
func (a *Advertiser) Advertise(ctx context.Context, s *models.Session, port int) error {
	txt := TXTRecords(s, a.Version)
	srv, err := a.register(a.Instance, ServiceType, ServiceDomain, port, txt)
	if err != nil {
		return fmt.Errorf("mdns register %q: %w", a.Instance, err)
	}
	a.log.Infow("mdns_advertised", "instance", a.Instance, "service", ServiceType, "port", port, "txt", txt)

	<-ctx.Done()
	srv.Shutdown()
	a.log.Infow("mdns_withdrawn", "instance", a.Instance)
	return nil
}
