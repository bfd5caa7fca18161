package service

import (
	"context"
	"time"

	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/repository"
)

// Linker joins the wireless network.
type Linker interface {
	Connect(ctx context.Context, creds models.Credentials) models.ConnectionOutcome
}

// Booter runs the boot sequence: load credentials, try to join, dispatch.
type Booter struct {
	store      repository.CredentialStore
	connector  Linker
	dispatcher *Dispatcher
	provision  *ProvisioningService
	zones      *ZoneService
	journal    *JournalService
	addr       func() string
	log        *logger.Logger
	now        func() time.Time
}

// BootDeps are the collaborators of a Booter.
type BootDeps struct {
	Store      repository.CredentialStore
	Connector  Linker
	Dispatcher *Dispatcher
	Provision  *ProvisioningService
	Zones      *ZoneService
	Journal    *JournalService
	// StationAddr returns the address after a successful join.
	StationAddr func() string
}

func NewBooter(deps BootDeps, log *logger.Logger) *Booter {
	return &Booter{
		store:      deps.Store,
		connector:  deps.Connector,
		dispatcher: deps.Dispatcher,
		provision:  deps.Provision,
		zones:      deps.Zones,
		journal:    deps.Journal,
		addr:       deps.StationAddr,
		log:        logger.OrNop(log),
		now:        time.Now,
	}
}

// LoadCredentials reads every credential field from the store.
func LoadCredentials(store repository.CredentialStore) models.Credentials {
	var c models.Credentials
	for _, f := range models.Fields {
		c.Set(f, store.Load(f))
	}
	return c
}

// Boot runs boot session number n and returns it fully dispatched.
func (b *Booter) Boot(ctx context.Context, n int) *models.Session {
	s := models.NewSession(n, b.now())
	s.Credentials = LoadCredentials(b.store)
	b.log.Infow("credentials_loaded", "session", n, "ssid", s.Credentials.NetworkName, "ip", s.Credentials.StaticAddress)

	if b.provision != nil {
		b.provision.Bind(s.Credentials)
	}

	s.Outcome = b.connector.Connect(ctx, s.Credentials)
	if s.Outcome == models.Connected {
		if b.addr != nil {
			s.LocalAddr = b.addr()
		}
		if b.zones != nil {
			b.zones.Restore(ctx)
		}
	}

	b.dispatcher.Dispatch(ctx, s)
	b.journal.Record(ctx, models.EventBoot, "boot "+s.Outcome.String(), map[string]any{
		"session": n,
		"mode":    string(s.Mode),
		"ssid":    s.Credentials.NetworkName,
	})
	return s
}
