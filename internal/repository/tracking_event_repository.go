package repository

import (
	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// TrackingEventRepository tracking journal data access interface.
// The journal is append-only, there are no update or delete methods.
type TrackingEventRepository interface {
	WithTx(tx *gorm.DB) TrackingEventRepository
	Append(event *models.TrackingEvent) error
	ListByMove(moveID uint) ([]models.TrackingEvent, error)
	List(filter TrackingEventListFilter) ([]models.TrackingEvent, int64, error)
	LatestByMove(moveID uint) (*models.TrackingEvent, error)
}

// GormTrackingEventRepository GORM implementation
type GormTrackingEventRepository struct {
	db *gorm.DB
}

// NewTrackingEventRepository creates a tracking event repository
func NewTrackingEventRepository(db *gorm.DB) *GormTrackingEventRepository {
	return &GormTrackingEventRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormTrackingEventRepository) WithTx(tx *gorm.DB) TrackingEventRepository {
	if tx == nil {
		return r
	}
	return &GormTrackingEventRepository{db: tx}
}

// Append inserts a journal entry
func (r *GormTrackingEventRepository) Append(event *models.TrackingEvent) error {
	return r.db.Create(event).Error
}

// ListByMove returns the full journal for a move in insertion order
func (r *GormTrackingEventRepository) ListByMove(moveID uint) ([]models.TrackingEvent, error) {
	var events []models.TrackingEvent
	err := r.db.Where("move_id = ?", moveID).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// List lists journal entries with filters
func (r *GormTrackingEventRepository) List(filter TrackingEventListFilter) ([]models.TrackingEvent, int64, error) {
	query := r.db.Model(&models.TrackingEvent{})
	if filter.MoveID > 0 {
		query = query.Where("move_id = ?", filter.MoveID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var events []models.TrackingEvent
	if err := query.Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// LatestByMove returns the most recent journal entry for a move
func (r *GormTrackingEventRepository) LatestByMove(moveID uint) (*models.TrackingEvent, error) {
	var event models.TrackingEvent
	err := r.db.Where("move_id = ?", moveID).
		Order("created_at DESC, id DESC").
		First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
