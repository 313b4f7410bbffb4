package models

import "time"

// Booking is the payment confirmation record created when a user pays
// against an approved move's quote. FinalPrice is locked to the quote
// total at payment time.
type Booking struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	MoveID        uint      `gorm:"index;not null" json:"move_id"`
	QuoteID       uint      `gorm:"index;not null" json:"quote_id"`
	FinalPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"final_price"`
	Status        string    `gorm:"index;not null" json:"status"`
	PaymentStatus string    `gorm:"index;not null" json:"payment_status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (Booking) TableName() string {
	return "bookings"
}
