package service

import (
	"context"
	"time"

	"irrigator/internal/logger"
	"irrigator/internal/models"
)

// EventNewReadings tags pushed reading snapshots.
const EventNewReadings = "new_readings"

// Publisher pushes the current readings to every subscriber at a fixed
// period measured from the previous publish.
type Publisher struct {
	readings Readings
	out      Broadcaster
	interval time.Duration
	log      *logger.Logger
}

func NewPublisher(readings Readings, out Broadcaster, interval time.Duration, log *logger.Logger) *Publisher {
	return &Publisher{readings: readings, out: out, interval: interval, log: logger.OrNop(log)}
}

// Run publishes every interval until ctx is canceled.
func (p *Publisher) Run(ctx context.Context, s *models.Session) {
	t := time.NewTimer(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := p.PublishOnce(ctx, s); err != nil {
				p.log.Errorw("readings_publish_failed", "err", err)
			}
			t.Reset(p.interval)
		}
	}
}

// PublishOnce acquires, encodes and broadcasts one snapshot tagged with the
// next tick of the session.
func (p *Publisher) PublishOnce(ctx context.Context, s *models.Session) error {
	body, err := EncodeReadings(p.readings.Current(ctx))
	if err != nil {
		return err
	}
	id := s.Tick()
	p.out.Broadcast(EventNewReadings, id, body)
	p.log.Debugw("readings_published", "id", id, "bytes", len(body))
	return nil
}
