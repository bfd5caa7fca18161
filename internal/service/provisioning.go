package service

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"irrigator/internal/device"
	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/repository"
)

// ProvisioningConfig holds the fixed access point and restart parameters.
type ProvisioningConfig struct {
	APSSID      string
	RebootDelay time.Duration
}

// ProvisioningService runs the fallback access point and stores what the
// configuration form submits. Submitted values are never validated here;
// the connector checks them on the next boot.
type ProvisioningService struct {
	radio    device.Radio
	store    repository.CredentialStore
	journal  *JournalService
	rebooter device.Rebooter
	cfg      ProvisioningConfig
	log      *logger.Logger

	// after schedules f to run once d has elapsed.
	after func(d time.Duration, f func())

	mu      sync.Mutex
	current models.Credentials
	pending bool
}

func NewProvisioningService(
	radio device.Radio,
	store repository.CredentialStore,
	journal *JournalService,
	rebooter device.Rebooter,
	cfg ProvisioningConfig,
	log *logger.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		radio:    radio,
		store:    store,
		journal:  journal,
		rebooter: rebooter,
		cfg:      cfg,
		log:      logger.OrNop(log),
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Bind starts a boot session with the credentials loaded at boot; Apply
// merges submissions into them.
func (p *ProvisioningService) Bind(creds models.Credentials) {
	p.mu.Lock()
	p.current = creds
	p.pending = false
	p.mu.Unlock()
}

// StartAccessPoint opens the open access point under the fixed name.
func (p *ProvisioningService) StartAccessPoint() (netip.Addr, error) {
	p.log.Infow("ap_starting", "ssid", p.cfg.APSSID)
	addr, err := p.radio.StartAccessPoint(p.cfg.APSSID, "")
	if err != nil {
		p.log.Errorw("ap_start_failed", "ssid", p.cfg.APSSID, "err", err)
		return netip.Addr{}, err
	}
	p.log.Infow("ap_started", "ssid", p.cfg.APSSID, "ip", addr)
	return addr, nil
}

// Apply stores every submitted field, one write per field, and returns the
// resulting credentials. Fields missing from submitted keep their value.
func (p *ProvisioningService) Apply(ctx context.Context, submitted map[models.Field]string) models.Credentials {
	p.mu.Lock()
	defer p.mu.Unlock()

	var saved []string
	for _, f := range models.Fields {
		v, ok := submitted[f]
		if !ok {
			continue
		}
		p.current.Set(f, v)
		if !p.store.Save(f, v) {
			p.log.Errorw("provision_field_not_saved", "field", f)
			continue
		}
		if f == models.FieldPassphrase {
			p.log.Infow("provision_field_saved", "field", f, "length", len(v))
		} else {
			p.log.Infow("provision_field_saved", "field", f, "value", v)
		}
		saved = append(saved, string(f))
	}

	p.journal.Record(ctx, models.EventProvision, "credentials submitted", map[string]any{"fields": saved})
	return p.current
}

// ScheduleReboot restarts the device once the reboot delay has elapsed.
// Calls while a restart is pending are ignored.
func (p *ProvisioningService) ScheduleReboot() {
	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return
	}
	p.pending = true
	p.mu.Unlock()

	p.log.Infow("reboot_scheduled", "delay", p.cfg.RebootDelay)
	p.after(p.cfg.RebootDelay, func() {
		p.rebooter.Reboot("provisioned")
	})
}
