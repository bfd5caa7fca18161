package service

import (
	"context"
	"net/http"
	"net/netip"
	"sync"
	"time"

	"irrigator/internal/device"
	"irrigator/internal/models"
)

type memStore struct {
	values map[models.Field]string
	saves  []models.Field
	fail   bool
}

func newMemStore() *memStore { return &memStore{values: map[models.Field]string{}} }

func (m *memStore) Load(f models.Field) string { return m.values[f] }
func (m *memStore) Save(f models.Field, v string) bool {
	if m.fail {
		return false
	}
	m.values[f] = v
	m.saves = append(m.saves, f)
	return true
}

type localEventRepo struct {
	mu        sync.Mutex
	events    []models.DeviceEvent
	appendErr error
}

func (f *localEventRepo) Append(ctx context.Context, e models.DeviceEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.appendErr
}

func (f *localEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DeviceEvent
	for _, e := range f.events {
		if !from.IsZero() && e.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && e.OccurredAt.After(to) {
			continue
		}
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *localEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeZoneRepo struct {
	rows    map[int]models.ZoneState
	saveErr error
}

func (f *fakeZoneRepo) Save(ctx context.Context, z models.ZoneState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.rows == nil {
		f.rows = map[int]models.ZoneState{}
	}
	f.rows[z.ID] = z
	return nil
}

func (f *fakeZoneRepo) List(ctx context.Context) ([]models.ZoneState, error) {
	var out []models.ZoneState
	for id := 1; id <= 8; id++ {
		if z, ok := f.rows[id]; ok {
			out = append(out, z)
		}
	}
	return out, nil
}

// recordingRadio counts every call made to it.
type recordingRadio struct {
	configureErr error
	joinErr      error
	status       device.LinkStatus
	calls        []string
	apSSID       string
	apPass       string
}

func (r *recordingRadio) Configure(local, gateway, subnet netip.Addr) error {
	r.calls = append(r.calls, "configure")
	return r.configureErr
}

func (r *recordingRadio) Join(ssid, passphrase string) error {
	r.calls = append(r.calls, "join")
	return r.joinErr
}

func (r *recordingRadio) Status() device.LinkStatus {
	r.calls = append(r.calls, "status")
	return r.status
}

func (r *recordingRadio) LocalAddr() netip.Addr { return netip.MustParseAddr("192.168.1.50") }

func (r *recordingRadio) StartAccessPoint(ssid, passphrase string) (netip.Addr, error) {
	r.calls = append(r.calls, "ap")
	r.apSSID, r.apPass = ssid, passphrase
	return device.DefaultAPAddr, nil
}

type countingRebooter struct {
	mu      sync.Mutex
	reasons []string
}

func (c *countingRebooter) Reboot(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reasons = append(c.reasons, reason)
}

func (c *countingRebooter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reasons)
}

type fakeIndicator struct{ signals []device.Signal }

func (f *fakeIndicator) Set(s device.Signal) { f.signals = append(f.signals, s) }

// namedRoutes returns handlers that identify the route set they belong to.
type namedRoutes struct{ built []string }

func (n *namedRoutes) Operational(*models.Session) http.Handler {
	n.built = append(n.built, "operational")
	return namedHandler("operational")
}

func (n *namedRoutes) Provisioning(*models.Session) http.Handler {
	n.built = append(n.built, "provisioning")
	return namedHandler("provisioning")
}

type namedHandler string

func (h namedHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(h))
}

type fakeSurface struct{ installed []http.Handler }

func (f *fakeSurface) Install(h http.Handler) { f.installed = append(f.installed, h) }

type broadcast struct {
	event   string
	id      uint64
	payload string
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []broadcast
}

func (r *recordingBroadcaster) Broadcast(event string, id uint64, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, broadcast{event, id, string(payload)})
}

type fakeAP struct {
	started int
}

func (f *fakeAP) StartAccessPoint() (netip.Addr, error) {
	f.started++
	return device.DefaultAPAddr, nil
}
