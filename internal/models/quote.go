package models

import "time"

// Quote is a priced proposal for a move. Total is the sum of the six
// fee components at creation time and is persisted rather than
// recomputed, so historical quotes stay stable even if fee semantics
// change. Re-quoting creates a new row, never edits this one.
type Quote struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	MoveID       uint       `gorm:"index;not null" json:"move_id"`
	BaseFee      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"base_fee"`
	DistanceFee  Money      `gorm:"type:decimal(20,2);not null;default:0" json:"distance_fee"`
	WeightFee    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"weight_fee"`
	SpecialItems Money      `gorm:"type:decimal(20,2);not null;default:0" json:"special_items_fee"`
	Insurance    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"insurance_fee"`
	Tax          Money      `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`
	Total        Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total"`
	ValidUntil   *time.Time `gorm:"index" json:"valid_until"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	Status       string     `gorm:"index;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
}

// TableName sets the table name
func (Quote) TableName() string {
	return "quotes"
}

// SumComponents returns the sum of the six fee components.
func (q *Quote) SumComponents() Money {
	total := q.BaseFee.Add(q.DistanceFee.Decimal)
	total = total.Add(q.WeightFee.Decimal)
	total = total.Add(q.SpecialItems.Decimal)
	total = total.Add(q.Insurance.Decimal)
	total = total.Add(q.Tax.Decimal)
	return NewMoneyFromDecimal(total)
}
