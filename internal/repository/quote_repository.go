package repository

import (
	"errors"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// QuoteRepository quote data access interface
type QuoteRepository interface {
	WithTx(tx *gorm.DB) QuoteRepository
	Create(quote *models.Quote) error
	GetByID(id uint) (*models.Quote, error)
	GetLatestByMove(moveID uint) (*models.Quote, error)
	List(filter QuoteListFilter) ([]models.Quote, int64, error)
	UpdateStatus(id uint, status string) error
	AcceptIfPending(id uint) (bool, error)
	ExpireIfPending(id uint, now time.Time) (bool, error)
	SupersedePending(moveID uint, exceptID uint) error
}

// GormQuoteRepository GORM implementation
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a quote repository
func NewQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormQuoteRepository) WithTx(tx *gorm.DB) QuoteRepository {
	if tx == nil {
		return r
	}
	return &GormQuoteRepository{db: tx}
}

// Create inserts a quote
func (r *GormQuoteRepository) Create(quote *models.Quote) error {
	return r.db.Create(quote).Error
}

// GetByID fetches a quote
func (r *GormQuoteRepository) GetByID(id uint) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// GetLatestByMove fetches the most recent quote for a move
func (r *GormQuoteRepository) GetLatestByMove(moveID uint) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.Where("move_id = ?", moveID).
		Order("id DESC").
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// List lists quotes
func (r *GormQuoteRepository) List(filter QuoteListFilter) ([]models.Quote, int64, error) {
	query := r.db.Model(&models.Quote{})
	if filter.MoveID > 0 {
		query = query.Where("move_id = ?", filter.MoveID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var quotes []models.Quote
	if err := query.Order("id DESC").Find(&quotes).Error; err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// UpdateStatus sets a quote status
func (r *GormQuoteRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AcceptIfPending marks a quote accepted only while it is still
// pending, so a concurrent expiry is never overwritten. Returns
// whether a row changed.
func (r *GormQuoteRepository) AcceptIfPending(id uint) (bool, error) {
	result := r.db.Model(&models.Quote{}).
		Where("id = ? AND status = ?", id, constants.QuoteStatusPending).
		Update("status", constants.QuoteStatusAccepted)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireIfPending marks a quote expired only while it is still pending
// and past its validity window. Returns whether a row changed.
func (r *GormQuoteRepository) ExpireIfPending(id uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Quote{}).
		Where("id = ? AND status = ? AND valid_until IS NOT NULL AND valid_until <= ?",
			id, constants.QuoteStatusPending, now).
		Update("status", constants.QuoteStatusExpired)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SupersedePending marks all other pending quotes for a move as
// superseded, a re-quote leaves exactly one live proposal.
func (r *GormQuoteRepository) SupersedePending(moveID uint, exceptID uint) error {
	return r.db.Model(&models.Quote{}).
		Where("move_id = ? AND status = ? AND id <> ?", moveID, constants.QuoteStatusPending, exceptID).
		Update("status", constants.QuoteStatusSuperseded).Error
}
