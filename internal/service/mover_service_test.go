package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMoverServiceTest(t *testing.T) *MoverService {
	t.Helper()
	dsn := fmt.Sprintf("file:mover_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Mover{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewMoverService(repository.NewMoverRepository(db))
}

func TestMoverServiceCreate(t *testing.T) {
	svc := setupMoverServiceTest(t)

	mover, err := svc.Create(MoverInput{Name: "  Island Movers  ", Phone: "876-555-0101"})
	if err != nil {
		t.Fatalf("create mover failed: %v", err)
	}
	if mover.Name != "Island Movers" {
		t.Fatalf("expected trimmed name, got: %q", mover.Name)
	}
	if mover.VehicleClass != constants.VehicleClassTruck {
		t.Fatalf("expected default vehicle class truck, got: %s", mover.VehicleClass)
	}
	if !mover.IsActive {
		t.Fatalf("expected new mover to be active")
	}

	if _, err := svc.Create(MoverInput{Name: ""}); !errors.Is(err, ErrMoverInvalidInput) {
		t.Fatalf("expected ErrMoverInvalidInput for empty name, got: %v", err)
	}
	if _, err := svc.Create(MoverInput{Name: "Bad Class", VehicleClass: "bicycle"}); !errors.Is(err, ErrMoverInvalidInput) {
		t.Fatalf("expected ErrMoverInvalidInput for unknown class, got: %v", err)
	}
}

func TestMoverServiceUpdate(t *testing.T) {
	svc := setupMoverServiceTest(t)
	mover, err := svc.Create(MoverInput{Name: "Island Movers", VehicleClass: constants.VehicleClassCar})
	if err != nil {
		t.Fatalf("create mover failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(mover.ID, MoverInput{Phone: "876-555-0202", IsActive: &inactive})
	if err != nil {
		t.Fatalf("update mover failed: %v", err)
	}
	if updated.Phone != "876-555-0202" {
		t.Fatalf("expected updated phone, got: %s", updated.Phone)
	}
	if updated.IsActive {
		t.Fatalf("expected mover deactivated")
	}
	if updated.Name != "Island Movers" || updated.VehicleClass != constants.VehicleClassCar {
		t.Fatalf("expected untouched fields preserved, got: %+v", updated)
	}

	if _, err := svc.Update(mover.ID+100, MoverInput{Name: "Missing"}); !errors.Is(err, ErrMoverNotFound) {
		t.Fatalf("expected ErrMoverNotFound, got: %v", err)
	}
}

func TestMoverServiceDeleteAndList(t *testing.T) {
	svc := setupMoverServiceTest(t)
	active, err := svc.Create(MoverInput{Name: "Island Movers"})
	if err != nil {
		t.Fatalf("create mover failed: %v", err)
	}
	inactive := false
	if _, err := svc.Create(MoverInput{Name: "Harbour Haulage", VehicleClass: constants.VehicleClassCar, IsActive: &inactive}); err != nil {
		t.Fatalf("create mover failed: %v", err)
	}

	activeOnly, total, err := svc.List(repository.MoverListFilter{ActiveOnly: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list movers failed: %v", err)
	}
	if total != 1 || len(activeOnly) != 1 || activeOnly[0].ID != active.ID {
		t.Fatalf("expected only the active mover, got total=%d: %+v", total, activeOnly)
	}

	byKeyword, total, err := svc.List(repository.MoverListFilter{Keyword: "harbour", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list movers failed: %v", err)
	}
	if total != 1 || len(byKeyword) != 1 {
		t.Fatalf("expected keyword match, got total=%d", total)
	}

	if err := svc.Delete(active.ID); err != nil {
		t.Fatalf("delete mover failed: %v", err)
	}
	if _, err := svc.GetByID(active.ID); !errors.Is(err, ErrMoverNotFound) {
		t.Fatalf("expected ErrMoverNotFound after delete, got: %v", err)
	}
	if err := svc.Delete(active.ID); !errors.Is(err, ErrMoverNotFound) {
		t.Fatalf("expected ErrMoverNotFound on double delete, got: %v", err)
	}
}
