package handlers

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"irrigator/internal/models"
	"irrigator/internal/service"
)

// readEvent reads one server-sent event and returns its fields.
func readEvent(t *testing.T, r *bufio.Reader) map[string]string {
	t.Helper()
	ev := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read event: %v (partial %v)", err, ev)
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if len(ev) == 0 {
				continue
			}
			return ev
		}
		k, v, _ := strings.Cut(line, ":")
		ev[k] = strings.TrimPrefix(v, " ")
	}
}

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers, have %d", n, hub.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEvents_PushMatchesReadingsEndpoint(t *testing.T) {
	readings := fixedReadings(21.5, 40, 1013)
	h, hub := newTestHandler(t, &service.Service{Readings: readings})
	session := testSession(models.Connected)
	srv := httptest.NewServer(h.InitOperationalRoutes(session))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	req.Header.Set("Last-Event-ID", "7")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}
	waitForSubscribers(t, hub, 1)

	pub := service.NewPublisher(readings, hub, time.Hour, nil)
	if err := pub.PublishOnce(ctx, session); err != nil {
		t.Fatalf("publish: %v", err)
	}

	ev := readEvent(t, bufio.NewReader(resp.Body))
	if ev["event"] != service.EventNewReadings || ev["id"] != "1" {
		t.Fatalf("unexpected event %v", ev)
	}

	got, err := http.Get(srv.URL + "/readings")
	if err != nil {
		t.Fatalf("GET /readings: %v", err)
	}
	defer got.Body.Close()
	body, _ := io.ReadAll(got.Body)
	if ev["data"] != string(body) {
		t.Fatalf("pushed %q, endpoint returned %q", ev["data"], body)
	}

	cancel()
	waitForSubscribers(t, hub, 0)
}

func TestEvents_IDsFollowPublishCount(t *testing.T) {
	h, hub := newTestHandler(t, &service.Service{Readings: fixedReadings(1, 2, 3)})
	srv := httptest.NewServer(h.InitOperationalRoutes(testSession(models.Connected)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()
	waitForSubscribers(t, hub, 1)

	hub.Broadcast(service.EventNewReadings, 41, []byte(`{"a":"1"}`))
	hub.Broadcast(service.EventNewReadings, 42, []byte(`{"a":"2"}`))

	r := bufio.NewReader(resp.Body)
	for _, want := range []string{"41", "42"} {
		if ev := readEvent(t, r); ev["id"] != want {
			t.Fatalf("id = %q, want %s", ev["id"], want)
		}
	}
}
