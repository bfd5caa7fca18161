package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"irrigator/internal/device"
	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/repository"
)

// ErrInvalidZone is returned for zone ids outside the relay bank.
var ErrInvalidZone = errors.New("invalid zone")

// ZoneService switches the irrigation relays and keeps their state.
type ZoneService struct {
	relays  *device.Relays
	repo    repository.ZoneRepo
	journal *JournalService
	log     *logger.Logger
	now     func() time.Time
}

func NewZoneService(relays *device.Relays, repo repository.ZoneRepo, journal *JournalService, log *logger.Logger) *ZoneService {
	return &ZoneService{relays: relays, repo: repo, journal: journal, log: logger.OrNop(log), now: time.Now}
}

// Toggle switches zone id on or off and persists the new state.
func (s *ZoneService) Toggle(ctx context.Context, id int, on bool) error {
	if err := s.relays.Set(id, on); err != nil {
		if errors.Is(err, device.ErrNoSuchRelay) {
			return fmt.Errorf("zone %d: %w", id, ErrInvalidZone)
		}
		return err
	}
	s.log.Infow("zone_toggled", "zone", id, "on", on)

	if s.repo != nil {
		if err := s.repo.Save(ctx, models.ZoneState{ID: id, On: on, UpdatedAt: s.now().UTC()}); err != nil {
			return fmt.Errorf("persist zone %d: %w", id, err)
		}
	}
	s.journal.Record(ctx, models.EventZone, fmt.Sprintf("zone %d %s", id, onOff(on)), map[string]any{"zone": id, "on": on})
	return nil
}

// List returns the state of every zone, 1..N.
func (s *ZoneService) List(ctx context.Context) ([]models.ZoneState, error) {
	known := map[int]models.ZoneState{}
	if s.repo != nil {
		persisted, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, z := range persisted {
			known[z.ID] = z
		}
	}
	out := make([]models.ZoneState, 0, s.relays.Count())
	for id := 1; id <= s.relays.Count(); id++ {
		z := known[id]
		z.ID = id
		z.On = s.relays.On(id)
		out = append(out, z)
	}
	return out, nil
}

// Restore drives the relays to their persisted state.
func (s *ZoneService) Restore(ctx context.Context) {
	if s.repo == nil {
		return
	}
	zones, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warnw("zone_restore_failed", "err", err)
		return
	}
	for _, z := range zones {
		if err := s.relays.Set(z.ID, z.On); err != nil {
			s.log.Warnw("zone_restore_skipped", "zone", z.ID, "err", err)
		}
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
