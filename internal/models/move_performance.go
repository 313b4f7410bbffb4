package models

import "time"

// MovePerformance is the write-only reporting record appended when a
// move completes: how long the job was estimated to take versus how
// long it actually took.
type MovePerformance struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	MoveID            uint      `gorm:"index;not null" json:"move_id"`
	EstimatedDuration int64     `gorm:"not null" json:"estimated_duration"` // seconds
	ActualDuration    int64     `gorm:"not null" json:"actual_duration"`    // seconds
	OnTime            bool      `gorm:"not null;index" json:"on_time"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (MovePerformance) TableName() string {
	return "move_performances"
}
