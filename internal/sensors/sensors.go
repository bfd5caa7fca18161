// Package sensors is the boundary to sensor acquisition. Acquisition is
// fallible per channel: a channel may have no value to offer.
package sensors

import (
	"context"

	"irrigator/internal/models"
)

// Source acquires the current value of a channel.
type Source interface {
	Sample(ctx context.Context, channel string) models.Sample
}

// Fixed returns the same value for every acquisition. Channels missing from
// the map are unavailable.
type Fixed map[string]float64

func (f Fixed) Sample(_ context.Context, channel string) models.Sample {
	v, ok := f[channel]
	return models.Sample{Value: v, OK: ok}
}

// Unavailable never has a value.
type Unavailable struct{}

func (Unavailable) Sample(context.Context, string) models.Sample {
	return models.Sample{}
}
