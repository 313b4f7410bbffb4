package repository

import (
	"errors"

	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// MoverRepository mover directory data access interface
type MoverRepository interface {
	Create(mover *models.Mover) error
	GetByID(id uint) (*models.Mover, error)
	Update(mover *models.Mover) error
	Delete(id uint) error
	List(filter MoverListFilter) ([]models.Mover, int64, error)
}

// GormMoverRepository GORM implementation
type GormMoverRepository struct {
	db *gorm.DB
}

// NewMoverRepository creates a mover repository
func NewMoverRepository(db *gorm.DB) *GormMoverRepository {
	return &GormMoverRepository{db: db}
}

// Create inserts a mover
func (r *GormMoverRepository) Create(mover *models.Mover) error {
	return r.db.Create(mover).Error
}

// GetByID fetches a mover
func (r *GormMoverRepository) GetByID(id uint) (*models.Mover, error) {
	var mover models.Mover
	if err := r.db.First(&mover, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mover, nil
}

// Update saves a mover
func (r *GormMoverRepository) Update(mover *models.Mover) error {
	return r.db.Save(mover).Error
}

// Delete soft-deletes a mover
func (r *GormMoverRepository) Delete(id uint) error {
	return r.db.Delete(&models.Mover{}, id).Error
}

// List lists movers
func (r *GormMoverRepository) List(filter MoverListFilter) ([]models.Mover, int64, error) {
	query := r.db.Model(&models.Mover{})
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", like, like)
	}
	if filter.VehicleClass != "" {
		query = query.Where("vehicle_class = ?", filter.VehicleClass)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var movers []models.Mover
	if err := query.Order("id ASC").Find(&movers).Error; err != nil {
		return nil, 0, err
	}
	return movers, total, nil
}
