package models

import "time"

// TrackingEvent is one immutable journal entry for a move: a lifecycle
// transition or a GPS telemetry ping. Rows are append-only and ordered
// by (created_at, id); the move's status column stays authoritative,
// the last event is only a display marker.
type TrackingEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	MoveID    uint      `gorm:"index;not null" json:"move_id"`
	EventType string    `gorm:"index;not null" json:"event_type"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	Actor     string    `gorm:"type:varchar(64)" json:"actor,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (TrackingEvent) TableName() string {
	return "tracking_events"
}
