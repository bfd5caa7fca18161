package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/repository"
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// JournalService records device events and lists them back.
type JournalService struct {
	eventRepo repository.EventRepo
	log       *logger.Logger
	now       func() time.Time
}

func NewJournalService(eventRepo repository.EventRepo, log *logger.Logger) *JournalService {
	return &JournalService{eventRepo: eventRepo, log: logger.OrNop(log), now: time.Now}
}

// Record appends an event. Journal failures are logged and otherwise
// ignored; they never abort the operation being journaled.
func (s *JournalService) Record(ctx context.Context, typ, description string, meta map[string]any) {
	if s == nil || s.eventRepo == nil {
		return
	}
	ev := models.DeviceEvent{
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		s.log.Warnw("journal_append_failed", "type", typ, "err", err)
	}
}

// List returns events matching f, oldest first.
func (s *JournalService) List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error) {
	from, to := toUTC(f.From), toUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.eventRepo.List(ctx, from, to, strings.ToUpper(strings.TrimSpace(f.Type)))
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
