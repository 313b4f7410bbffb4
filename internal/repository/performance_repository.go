package repository

import (
	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// PerformanceSummary aggregate on-time numbers for reporting
type PerformanceSummary struct {
	TotalMoves  int64   `json:"total_moves"`
	OnTimeMoves int64   `json:"on_time_moves"`
	OnTimeRate  float64 `json:"on_time_rate"`
}

// PerformanceRepository performance record data access interface
type PerformanceRepository interface {
	Create(record *models.MovePerformance) error
	ExistsForMove(moveID uint) (bool, error)
	List(filter PerformanceListFilter) ([]models.MovePerformance, int64, error)
	Summary() (*PerformanceSummary, error)
}

// GormPerformanceRepository GORM implementation
type GormPerformanceRepository struct {
	db *gorm.DB
}

// NewPerformanceRepository creates a performance repository
func NewPerformanceRepository(db *gorm.DB) *GormPerformanceRepository {
	return &GormPerformanceRepository{db: db}
}

// Create inserts a performance record
func (r *GormPerformanceRepository) Create(record *models.MovePerformance) error {
	return r.db.Create(record).Error
}

// ExistsForMove reports whether a move already has a record, the
// worker may retry a completed task.
func (r *GormPerformanceRepository) ExistsForMove(moveID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.MovePerformance{}).
		Where("move_id = ?", moveID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List lists performance records
func (r *GormPerformanceRepository) List(filter PerformanceListFilter) ([]models.MovePerformance, int64, error) {
	query := r.db.Model(&models.MovePerformance{})
	if filter.MoveID > 0 {
		query = query.Where("move_id = ?", filter.MoveID)
	}
	if filter.OnTime != nil {
		query = query.Where("on_time = ?", *filter.OnTime)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var records []models.MovePerformance
	if err := query.Order("id DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Summary aggregates on-time performance across all records
func (r *GormPerformanceRepository) Summary() (*PerformanceSummary, error) {
	var summary PerformanceSummary
	err := r.db.Model(&models.MovePerformance{}).Count(&summary.TotalMoves).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&models.MovePerformance{}).
		Where("on_time = ?", true).
		Count(&summary.OnTimeMoves).Error
	if err != nil {
		return nil, err
	}
	if summary.TotalMoves > 0 {
		summary.OnTimeRate = float64(summary.OnTimeMoves) / float64(summary.TotalMoves)
	}
	return &summary, nil
}
