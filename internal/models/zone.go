package models

import "time"

// ZoneState is the persisted state of one irrigation relay.
type ZoneState struct {
	ID        int       `json:"id"`
	On        bool      `json:"on"`
	UpdatedAt time.Time `json:"updated_at"`
}
