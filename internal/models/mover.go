package models

import (
	"time"

	"gorm.io/gorm"
)

// Mover is one moving crew in the directory. VehicleClass selects the
// average-speed constant used for travel-time estimates.
type Mover struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`
	VehicleClass string         `gorm:"type:varchar(16);not null;default:'truck'" json:"vehicle_class"`
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name
func (Mover) TableName() string {
	return "movers"
}
