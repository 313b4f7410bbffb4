package repository

import (
	"errors"

	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// BookingRepository booking data access interface
type BookingRepository interface {
	WithTx(tx *gorm.DB) BookingRepository
	Create(booking *models.Booking) error
	GetByMove(moveID uint) (*models.Booking, error)
}

// GormBookingRepository GORM implementation
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a booking repository
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormBookingRepository) WithTx(tx *gorm.DB) BookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

// Create inserts a booking
func (r *GormBookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByMove fetches the booking for a move
func (r *GormBookingRepository) GetByMove(moveID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Where("move_id = ?", moveID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}
