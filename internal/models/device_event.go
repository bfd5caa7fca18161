package models

import "time"

// Journal event types.
const (
	EventBoot      = "BOOT"
	EventProvision = "PROVISION"
	EventZone      = "ZONE"
	EventUpdate    = "UPDATE"
)

// DeviceEvent is a single journal entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // BOOT | PROVISION | ZONE | UPDATE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
