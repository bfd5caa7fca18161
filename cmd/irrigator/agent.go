package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	_ "irrigator/docs"
	"irrigator/internal/clock"
	"irrigator/internal/config"
	"irrigator/internal/device"
	"irrigator/internal/discovery"
	"irrigator/internal/handlers"
	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/relayhttp"
	"irrigator/internal/repository"
	"irrigator/internal/repository/db"
	"irrigator/internal/sensors"
	"irrigator/internal/server"
	"irrigator/internal/service"
	"irrigator/web"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func runAgent(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	log := logger.Get(cfg.Log.Level)
	logger.SetLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newAgent(cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	log.Infow("agent_starting", "version", version, "profile", cfg.Profile, "port", cfg.Port)
	return a.run(ctx)
}

// agent owns every long-lived component and runs boot sessions until it is
// stopped.
type agent struct {
	cfg *config.Config
	log *logger.Logger

	db         *sql.DB
	restart    *device.Restart
	booter     *service.Booter
	publisher  *service.Publisher
	firmware   *service.FirmwareService
	hub        *handlers.Hub
	handler    *handlers.Handler
	surface    *server.Server
	listen     func() (net.Listener, error)
	ota        *server.Server
	relay      *relayhttp.Server
	advertiser *discovery.Advertiser
}

func newAgent(cfg *config.Config, log *logger.Logger) (*agent, error) {
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}
	assets, err := web.Load()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	osFs := afero.NewOsFs()
	repos := repository.NewRepository(sqlDB, osFs, cfg.Storage.Dir, log)

	pins := device.NewHostPins(log)
	relays := device.NewRelays(pins, cfg.Relay.Pins)
	indicator := device.NewIndicator(pins, device.RGB{Red: cfg.Indicator.Red, Green: cfg.Indicator.Green, Blue: cfg.Indicator.Blue})
	radio := device.NewSimRadio(cfg.WiFi.Networks(), cfg.WiFi.SimulatedDelay, log)
	restart := device.NewRestart()

	journal := service.NewJournalService(repos.Events, log)
	zones := service.NewZoneService(relays, repos.Zones, journal, log)
	readings := service.NewReadingsService(sensors.Unavailable{}, cfg.Readings.Fallback, log)
	provision := service.NewProvisioningService(radio, repos.Credentials, journal, restart, service.ProvisioningConfig{
		APSSID:      cfg.APSSID(),
		RebootDelay: cfg.Provision.RebootDelay,
	}, log)
	firmware, err := service.NewFirmwareService(service.FirmwareConfig{
		SecretHash: cfg.OTA.SecretHash,
		TokenTTL:   cfg.OTA.TokenTTL,
		Dir:        cfg.OTA.StagingDir,
	}, osFs, restart, journal, log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	hub := handlers.NewHub(0, log)
	h := handlers.NewHandler(&service.Service{
		Readings:     readings,
		Zones:        zones,
		Journal:      journal,
		Provisioning: provision,
		Firmware:     firmware,
	}, hub, assets, log)

	var routes service.RouteSets = h
	if cfg.Profile == config.ProfileRelay {
		routes = h.RelayProfile()
	}
	surface := server.New(cfg.Port)

	connector := service.NewConnector(radio, clock.Real{}, service.ConnectorConfig{
		Timeout:      cfg.WiFi.ConnectTimeout,
		PollInterval: cfg.WiFi.PollInterval,
		Gateway:      cfg.Gateway(),
		Subnet:       cfg.Subnet(),
	}, log)

	booter := service.NewBooter(service.BootDeps{
		Store:       repos.Credentials,
		Connector:   connector,
		Dispatcher:  service.NewDispatcher(indicator, provision, routes, surface, log),
		Provision:   provision,
		Zones:       zones,
		Journal:     journal,
		StationAddr: func() string { return radio.LocalAddr().String() },
	}, log)

	a := &agent{
		cfg:       cfg,
		log:       log,
		db:        sqlDB,
		restart:   restart,
		booter:    booter,
		publisher: service.NewPublisher(readings, hub, cfg.Readings.Interval, log),
		firmware:  firmware,
		hub:       hub,
		handler:   h,
		surface:   surface,
		ota:       server.New(cfg.OTA.Port),
		relay:     relayhttp.New(relays, 1, cfg.Relay.RequestTimeout, log),
	}
	a.listen = surface.Listen
	if cfg.MDNS.Enabled {
		a.advertiser = discovery.NewAdvertiser(cfg.MDNS.Instance, version, log)
	}
	return a, nil
}

// run serves boot sessions until ctx is canceled or an HTTP server fails.
// The surface is bound up front but only served once the first session has
// dispatched. A restart request takes the route set down, ends the current
// session and boots the next one.
func (a *agent) run(ctx context.Context) error {
	ln, err := a.listen()
	if err != nil {
		return err
	}

	errc := make(chan error, 2)
	if a.firmware.Enabled() {
		a.ota.Install(a.handler.InitUpdateRoutes())
		go func() { errc <- a.ota.Run() }()
		a.log.Infow("ota_listening", "port", a.cfg.OTA.Port)
	} else {
		a.log.Infow("ota_disabled", "reason", "ota.secret_hash not set")
	}

	for n := 1; ; n++ {
		sessCtx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		end := func() {
			a.surface.Install(nil)
			cancel()
			a.hub.CloseAll()
			wg.Wait()
		}

		s := a.booter.Boot(sessCtx, n)
		if n == 1 {
			go func() { errc <- a.surface.Serve(ln) }()
			a.log.Infow("http_listening", "addr", ln.Addr().String())
		}
		if s.Mode == models.ModeOperational {
			a.startOperational(sessCtx, s, &wg)
		}

		select {
		case <-ctx.Done():
			end()
			return a.shutdown()
		case err := <-errc:
			end()
			_ = a.shutdown()
			if err == nil {
				err = errors.New("stopped unexpectedly")
			}
			return fmt.Errorf("http server: %w", err)
		case reason := <-a.restart.Requests():
			a.log.Infow("restarting", "session", n, "reason", reason)
			end()
		}
	}
}

// startOperational runs the background work of an operational session.
func (a *agent) startOperational(ctx context.Context, s *models.Session, wg *sync.WaitGroup) {
	goWait := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	switch a.cfg.Profile {
	case config.ProfileRelay:
		goWait(func() {
			if err := a.relay.ListenAndServe(ctx, ":"+a.cfg.Relay.Port); err != nil {
				a.log.Errorw("relay_server_failed", "err", err)
			}
		})
	default:
		goWait(func() { a.publisher.Run(ctx, s) })
	}

	if a.advertiser == nil {
		return
	}
	port, err := strconv.Atoi(a.cfg.Port)
	if err != nil {
		a.log.Warnw("mdns_skipped", "port", a.cfg.Port, "err", err)
		return
	}
	goWait(func() {
		if err := a.advertiser.Advertise(ctx, s, port); err != nil {
			a.log.Warnw("mdns_failed", "err", err)
		}
	})
}

func (a *agent) shutdown() error {
	a.log.Infow("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.surface.Shutdown(ctx)
	if oerr := a.ota.Shutdown(ctx); oerr != nil && err == nil {
		err = oerr
	}
	return err
}

func (a *agent) close() {
	if err := a.db.Close(); err != nil {
		a.log.Errorw("failed to close sqlite", "err", err)
	}
}
