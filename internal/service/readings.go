package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"irrigator/internal/logger"
	"irrigator/internal/models"
	"irrigator/internal/sensors"
)

// ReadingsService acquires the current sensor values. A channel the sensors
// cannot provide is substituted with its fallback value.
type ReadingsService struct {
	src      sensors.Source
	fallback map[string]float64
	log      *logger.Logger
	now      func() time.Time
}

func NewReadingsService(src sensors.Source, fallback map[string]float64, log *logger.Logger) *ReadingsService {
	return &ReadingsService{src: src, fallback: fallback, log: logger.OrNop(log), now: time.Now}
}

// Current returns one value per channel, in channel order.
func (s *ReadingsService) Current(ctx context.Context) models.Readings {
	out := models.Readings{
		Values:  make([]models.Reading, 0, len(models.Channels)),
		TakenAt: s.now().UTC(),
	}
	for _, ch := range models.Channels {
		sample := s.src.Sample(ctx, ch)
		v := sample.Value
		if !sample.OK {
			v = s.fallback[ch]
			s.log.Debugw("reading_unavailable", "channel", ch, "fallback", v)
		}
		out.Values = append(out.Values, models.Reading{Name: ch, Value: v})
	}
	return out
}

// readingsBody is the wire form shared by GET /readings and the pushed
// new_readings events. Values are strings, as the page script expects.
type readingsBody struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
}

// EncodeReadings serializes r. It is the only encoder for readings, so the
// query endpoint and the push channel always agree byte for byte.
func EncodeReadings(r models.Readings) ([]byte, error) {
	format := func(ch string) string {
		v, _ := r.Value(ch)
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return json.Marshal(readingsBody{
		Temperature: format(models.ChannelTemperature),
		Humidity:    format(models.ChannelHumidity),
		Pressure:    format(models.ChannelPressure),
	})
}
