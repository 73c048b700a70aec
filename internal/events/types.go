package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventTreeChanged     EventType = "tree_changed"
	EventSettingsChanged EventType = "settings_changed"
	EventProfileChanged  EventType = "profile_changed"
)

// Event represents a change to one user's data
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`           // For filtering - whose data was modified
	Member     string    `json:"member,omitempty"` // Affected family member, if any
	Timestamp  time.Time `json:"timestamp"`        // When the event occurred
	SequenceID int64     `json:"sequenceId"`       // Monotonically increasing sequence number for ordering
}
