package repository

import (
	"errors"

	"github.com/egzit/egzit/internal/models"

	"gorm.io/gorm"
)

// ErrVersionConflict the row was modified by a concurrent writer
var ErrVersionConflict = errors.New("move version conflict")

// MoveRepository move data access interface
type MoveRepository interface {
	WithTx(tx *gorm.DB) MoveRepository
	Create(move *models.Move) error
	GetByID(id uint) (*models.Move, error)
	GetByIDAndUser(id uint, userID uint) (*models.Move, error)
	GetByMoveNo(moveNo string) (*models.Move, error)
	ListAdmin(filter MoveListFilter) ([]models.Move, int64, error)
	ListByUser(filter MoveListFilter) ([]models.Move, int64, error)
	UpdateVersioned(id uint, version uint64, updates map[string]interface{}) error
	UpdatePosition(id uint, lat, lng float64) error
	CountByStatus() (map[string]int64, error)
}

// GormMoveRepository GORM implementation
type GormMoveRepository struct {
	db *gorm.DB
}

// NewMoveRepository creates a move repository
func NewMoveRepository(db *gorm.DB) *GormMoveRepository {
	return &GormMoveRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormMoveRepository) WithTx(tx *gorm.DB) MoveRepository {
	if tx == nil {
		return r
	}
	return &GormMoveRepository{db: tx}
}

func (r *GormMoveRepository) withChildren(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Quote").
		Preload("AssignedMover")
}

// Create inserts a move
func (r *GormMoveRepository) Create(move *models.Move) error {
	return r.db.Create(move).Error
}

// GetByID fetches a move with its quote and assigned mover
func (r *GormMoveRepository) GetByID(id uint) (*models.Move, error) {
	var move models.Move
	if err := r.withChildren(r.db).First(&move, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &move, nil
}

// GetByIDAndUser fetches a move owned by the given user
func (r *GormMoveRepository) GetByIDAndUser(id uint, userID uint) (*models.Move, error) {
	var move models.Move
	err := r.withChildren(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&move).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &move, nil
}

// GetByMoveNo fetches a move by its public number
func (r *GormMoveRepository) GetByMoveNo(moveNo string) (*models.Move, error) {
	var move models.Move
	err := r.withChildren(r.db).
		Where("move_no = ?", moveNo).
		First(&move).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &move, nil
}

func (r *GormMoveRepository) applyFilter(query *gorm.DB, filter MoveListFilter) *gorm.DB {
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MoveNo != "" {
		query = query.Where("move_no = ?", filter.MoveNo)
	}
	if filter.AssignedMoverID > 0 {
		query = query.Where("assigned_mover_id = ?", filter.AssignedMoverID)
	}
	if filter.MoveDateFrom != nil {
		query = query.Where("move_date >= ?", *filter.MoveDateFrom)
	}
	if filter.MoveDateTo != nil {
		query = query.Where("move_date <= ?", *filter.MoveDateTo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListAdmin lists moves across all users
func (r *GormMoveRepository) ListAdmin(filter MoveListFilter) ([]models.Move, int64, error) {
	query := r.applyFilter(r.db.Model(&models.Move{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var moves []models.Move
	if err := r.withChildren(query).Order("id DESC").Find(&moves).Error; err != nil {
		return nil, 0, err
	}
	return moves, total, nil
}

// ListByUser lists moves for one user
func (r *GormMoveRepository) ListByUser(filter MoveListFilter) ([]models.Move, int64, error) {
	if filter.UserID == 0 {
		return []models.Move{}, 0, nil
	}
	return r.ListAdmin(filter)
}

// UpdateVersioned applies updates only when the stored version still
// matches, bumping the version in the same statement. A zero-row
// result means a concurrent writer got there first.
func (r *GormMoveRepository) UpdateVersioned(id uint, version uint64, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	result := r.db.Model(&models.Move{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// UpdatePosition writes the latest crew position without touching the
// version counter, telemetry must never contend with transitions.
func (r *GormMoveRepository) UpdatePosition(id uint, lat, lng float64) error {
	return r.db.Model(&models.Move{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_lat": lat,
			"current_lng": lng,
		}).Error
}

// CountByStatus returns move counts grouped by status
func (r *GormMoveRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Move{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, item := range rows {
		out[item.Status] = item.Count
	}
	return out, nil
}
