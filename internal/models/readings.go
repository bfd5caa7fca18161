package models

import "time"

// Reading channel names, in serialization order.
const (
	ChannelTemperature = "temperature"
	ChannelHumidity    = "humidity"
	ChannelPressure    = "pressure"
)

// Channels is the fixed set of sensor channels.
var Channels = []string{ChannelTemperature, ChannelHumidity, ChannelPressure}

// Reading is one sensor value.
type Reading struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Sample is the result of acquiring one channel. OK is false when the sensor
// had nothing to offer.
type Sample struct {
	Value float64
	OK    bool
}

// Readings is the latest set of values, one per channel, in Channels order.
type Readings struct {
	Values  []Reading `json:"values"`
	TakenAt time.Time `json:"taken_at"`
}

// Value returns the value for a channel.
func (r Readings) Value(name string) (float64, bool) {
	for _, v := range r.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}
