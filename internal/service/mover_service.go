package service

import (
	"strings"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/repository"
)

// MoverService manages the mover directory
type MoverService struct {
	moverRepo repository.MoverRepository
}

// NewMoverService creates a mover service
func NewMoverService(moverRepo repository.MoverRepository) *MoverService {
	return &MoverService{moverRepo: moverRepo}
}

// MoverInput create/update input
type MoverInput struct {
	Name         string
	Phone        string
	VehicleClass string
	IsActive     *bool
}

func normalizeVehicleClass(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case constants.VehicleClassCar:
		return constants.VehicleClassCar, true
	case constants.VehicleClassTruck, "":
		return constants.VehicleClassTruck, true
	default:
		return "", false
	}
}

// Create adds a mover to the directory
func (s *MoverService) Create(input MoverInput) (*models.Mover, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMoverInvalidInput
	}
	vehicleClass, ok := normalizeVehicleClass(input.VehicleClass)
	if !ok {
		return nil, ErrMoverInvalidInput
	}

	mover := &models.Mover{
		Name:         name,
		Phone:        strings.TrimSpace(input.Phone),
		VehicleClass: vehicleClass,
		IsActive:     true,
	}
	if input.IsActive != nil {
		mover.IsActive = *input.IsActive
	}
	if err := s.moverRepo.Create(mover); err != nil {
		return nil, err
	}
	return mover, nil
}

// Update edits a mover
func (s *MoverService) Update(id uint, input MoverInput) (*models.Mover, error) {
	mover, err := s.moverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mover == nil {
		return nil, ErrMoverNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		mover.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		mover.Phone = phone
	}
	if strings.TrimSpace(input.VehicleClass) != "" {
		vehicleClass, ok := normalizeVehicleClass(input.VehicleClass)
		if !ok {
			return nil, ErrMoverInvalidInput
		}
		mover.VehicleClass = vehicleClass
	}
	if input.IsActive != nil {
		mover.IsActive = *input.IsActive
	}

	if err := s.moverRepo.Update(mover); err != nil {
		return nil, err
	}
	return mover, nil
}

// Delete removes a mover from the directory
func (s *MoverService) Delete(id uint) error {
	mover, err := s.moverRepo.GetByID(id)
	if err != nil {
		return err
	}
	if mover == nil {
		return ErrMoverNotFound
	}
	return s.moverRepo.Delete(id)
}

// GetByID fetches a mover
func (s *MoverService) GetByID(id uint) (*models.Mover, error) {
	mover, err := s.moverRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mover == nil {
		return nil, ErrMoverNotFound
	}
	return mover, nil
}

// List lists movers
func (s *MoverService) List(filter repository.MoverListFilter) ([]models.Mover, int64, error) {
	return s.moverRepo.List(filter)
}
