package service

import (
	"context"
	"io"
	"net/http"

	"irrigator/internal/models"
)

// Readings exposes the latest sensor values.
type Readings interface {
	Current(ctx context.Context) models.Readings
}

// Zones switches irrigation relays and reports their state.
type Zones interface {
	Toggle(ctx context.Context, id int, on bool) error
	List(ctx context.Context) ([]models.ZoneState, error)
}

// Journal exposes the device event log with filtering access.
type Journal interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Provisioning stores credentials submitted through the configuration form
// and restarts the device afterwards.
type Provisioning interface {
	Apply(ctx context.Context, submitted map[models.Field]string) models.Credentials
	ScheduleReboot()
}

// Firmware is the remote update channel.
type Firmware interface {
	Authenticate(secret string) (string, error)
	Apply(ctx context.Context, token string, image io.Reader, size int64, md5hex string) error
}

// Broadcaster pushes one message to every subscriber of the server-push
// channel. It must not block and must tolerate zero subscribers.
type Broadcaster interface {
	Broadcast(event string, id uint64, payload []byte)
}

// RouteSets builds the two mutually exclusive HTTP surfaces.
type RouteSets interface {
	Operational(s *models.Session) http.Handler
	Provisioning(s *models.Session) http.Handler
}

// Surface is the single HTTP server; Install replaces the handler it serves.
type Surface interface {
	Install(h http.Handler)
}

// Service aggregates the services the HTTP layer talks to.
type Service struct {
	Readings
	Zones
	Journal
	Provisioning
	Firmware
}
