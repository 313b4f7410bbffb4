package models

import (
	"time"

	"gorm.io/gorm"
)

// Move is one relocation job from a pickup address to a delivery
// address. Status follows the lifecycle state machine in the move
// service; Version guards every transition write against concurrent
// admin updates.
type Move struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	MoveNo               string         `gorm:"uniqueIndex;not null" json:"move_no"`
	UserID               uint           `gorm:"index;not null" json:"user_id"`
	Name                 string         `gorm:"not null" json:"name"`
	PickupAddress        string         `gorm:"type:text;not null" json:"pickup_address"`
	DeliveryAddress      string         `gorm:"type:text;not null" json:"delivery_address"`
	PickupLat            *float64       `json:"pickup_lat,omitempty"`
	PickupLng            *float64       `json:"pickup_lng,omitempty"`
	DeliveryLat          *float64       `json:"delivery_lat,omitempty"`
	DeliveryLng          *float64       `json:"delivery_lng,omitempty"`
	MoveDate             time.Time      `gorm:"index;not null" json:"move_date"`
	Status               string         `gorm:"index;not null" json:"status"`
	ScheduledTime        *string        `gorm:"type:varchar(5)" json:"scheduled_time"` // HH:MM
	AssignedMoverID      *uint          `gorm:"index" json:"assigned_mover_id"`
	QuoteID              *uint          `gorm:"index" json:"quote_id"`
	EstimatedDuration    *int64         `json:"estimated_duration"` // seconds
	EstimatedArrivalTime *time.Time     `json:"estimated_arrival_time"`
	ApprovedAt           *time.Time     `json:"approved_at"`
	ActualStartTime      *time.Time     `json:"actual_start_time"`
	ActualEndTime        *time.Time     `json:"actual_end_time"`
	CurrentLat           *float64       `json:"current_lat"`
	CurrentLng           *float64       `json:"current_lng"`
	CancellationReason   string         `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt          *time.Time     `json:"cancelled_at"`
	RouteMeta            JSON           `gorm:"serializer:json" json:"route_meta,omitempty"`
	Version              uint64         `gorm:"not null;default:0" json:"version"`
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Quote         *Quote          `gorm:"foreignKey:QuoteID" json:"quote,omitempty"`
	AssignedMover *Mover          `gorm:"foreignKey:AssignedMoverID" json:"assigned_mover,omitempty"`
	Events        []TrackingEvent `gorm:"foreignKey:MoveID" json:"events,omitempty"`
}

// TableName sets the table name
func (Move) TableName() string {
	return "moves"
}
