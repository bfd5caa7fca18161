package handlers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"irrigator/internal/models"
	"irrigator/internal/service"
	"irrigator/web"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockReadings struct {
	readings models.Readings
}

func (m *mockReadings) Current(ctx context.Context) models.Readings {
	return m.readings
}

func fixedReadings(temp, hum, pres float64) *mockReadings {
	return &mockReadings{readings: models.Readings{Values: []models.Reading{
		{Name: models.ChannelTemperature, Value: temp},
		{Name: models.ChannelHumidity, Value: hum},
		{Name: models.ChannelPressure, Value: pres},
	}}}
}

type mockZones struct {
	toggleErr error
	zones     []models.ZoneState
	listErr   error

	lastID int
	lastOn bool
	calls  int
}

func (m *mockZones) Toggle(ctx context.Context, id int, on bool) error {
	m.calls++
	m.lastID, m.lastOn = id, on
	return m.toggleErr
}

func (m *mockZones) List(ctx context.Context) ([]models.ZoneState, error) {
	return m.zones, m.listErr
}

type mockJournal struct {
	resp     []models.DeviceEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockJournal) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockProvisioning struct {
	mu        sync.Mutex
	stored    models.Credentials
	submitted []map[models.Field]string
	reboots   int
}

func (m *mockProvisioning) Apply(ctx context.Context, submitted map[models.Field]string) models.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, submitted)
	for f, v := range submitted {
		m.stored.Set(f, v)
	}
	return m.stored
}

func (m *mockProvisioning) ScheduleReboot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reboots++
}

type mockFirmware struct {
	token    string
	authErr  error
	applyErr error

	lastSecret string
	lastToken  string
	lastSize   int64
	lastMD5    string
	lastImage  []byte
}

func (m *mockFirmware) Authenticate(secret string) (string, error) {
	m.lastSecret = secret
	return m.token, m.authErr
}

func (m *mockFirmware) Apply(ctx context.Context, token string, image io.Reader, size int64, md5hex string) error {
	m.lastToken, m.lastSize, m.lastMD5 = token, size, md5hex
	m.lastImage, _ = io.ReadAll(image)
	return m.applyErr
}

// ---- Shared Test Helpers ----

func testAssets(t *testing.T) *web.Assets {
	t.Helper()
	files := fstest.MapFS{
		"index.html":       {Data: []byte("<html>dashboard</html>")},
		"wifimanager.html": {Data: []byte("<html>wifi form</html>")},
		"style.css":        {Data: []byte("body{}")},
		"main.js":          {Data: []byte("console.log('ready')")},
	}
	manifest := []byte("pages:\n  operational: index.html\n  provisioning: wifimanager.html\ncontent_types:\n  .html: text/html; charset=utf-8\n")
	a, err := web.New(files, manifest)
	if err != nil {
		t.Fatalf("assets: %v", err)
	}
	return a
}

func newTestHandler(t *testing.T, s *service.Service) (*Handler, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(4, nil)
	return NewHandler(s, hub, testAssets(t), nil), hub
}

func testSession(outcome models.ConnectionOutcome) *models.Session {
	s := models.NewSession(1, time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC))
	s.Outcome = outcome
	s.Mode = models.ModeFor(outcome)
	return s
}

func newOperationalRouter(t *testing.T, s *service.Service) *gin.Engine {
	h, _ := newTestHandler(t, s)
	return h.InitOperationalRoutes(testSession(models.Connected))
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
