package service

import (
	"context"
	"errors"
	"testing"

	"irrigator/internal/device"
	"irrigator/internal/models"
)

func newTestZones(repo *fakeZoneRepo, events *localEventRepo) (*ZoneService, *device.HostPins) {
	pins := device.NewHostPins(nil)
	relays := device.NewRelays(pins, []int{36, 39, 34, 35})
	return NewZoneService(relays, repo, NewJournalService(events, nil), nil), pins
}

func TestZoneService_Toggle(t *testing.T) {
	repo := &fakeZoneRepo{}
	events := &localEventRepo{}
	z, pins := newTestZones(repo, events)

	if err := z.Toggle(context.Background(), 2, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pins.Level(39) {
		t.Fatalf("expected relay pin 39 high")
	}
	if !repo.rows[2].On {
		t.Fatalf("expected zone 2 persisted on, got %+v", repo.rows)
	}
	if types := events.types(); len(types) != 1 || types[0] != models.EventZone {
		t.Fatalf("expected ZONE event, got %v", types)
	}
}

func TestZoneService_ToggleInvalid(t *testing.T) {
	z, _ := newTestZones(&fakeZoneRepo{}, &localEventRepo{})
	for _, id := range []int{0, 5, -1} {
		if err := z.Toggle(context.Background(), id, true); !errors.Is(err, ErrInvalidZone) {
			t.Fatalf("zone %d: expected ErrInvalidZone, got %v", id, err)
		}
	}
}

func TestZoneService_TogglePersistFailure(t *testing.T) {
	events := &localEventRepo{}
	z, _ := newTestZones(&fakeZoneRepo{saveErr: errTest}, events)
	if err := z.Toggle(context.Background(), 1, true); !errors.Is(err, errTest) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	if len(events.types()) != 0 {
		t.Fatalf("expected no journal entry")
	}
}

func TestZoneService_ListAndRestore(t *testing.T) {
	repo := &fakeZoneRepo{rows: map[int]models.ZoneState{
		3: {ID: 3, On: true, UpdatedAt: testNow},
		9: {ID: 9, On: true},
	}}
	z, pins := newTestZones(repo, &localEventRepo{})

	z.Restore(context.Background())
	if !pins.Level(34) {
		t.Fatalf("expected zone 3 relay restored high")
	}

	list, err := z.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 zones, got %d", len(list))
	}
	for i, st := range list {
		if st.ID != i+1 {
			t.Fatalf("zone %d has id %d", i, st.ID)
		}
		if st.On != (st.ID == 3) {
			t.Fatalf("zone %d on = %v", st.ID, st.On)
		}
	}
	if !list[2].UpdatedAt.Equal(testNow) {
		t.Fatalf("expected persisted timestamp, got %v", list[2].UpdatedAt)
	}
}
