//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.MovePerformance{},
		&models.TrackingEvent{},
		&models.Quote{},
		&models.Move{},
		&models.Mover{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Mover{},
		&models.Move{},
		&models.Quote{},
		&models.TrackingEvent{},
		&models.MovePerformance{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresMoveListFilters(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	moveRepo := NewMoveRepository(db)
	moveDate := time.Now().UTC().AddDate(0, 0, 10).Truncate(24 * time.Hour)

	pending := &models.Move{
		MoveNo:          "PG-MOVE-001",
		UserID:          1,
		Name:            "pg pending move",
		PickupAddress:   "12 Hope Road, Kingston",
		DeliveryAddress: "4 Gloucester Avenue, Montego Bay",
		MoveDate:        moveDate,
		Status:          constants.MoveStatusPending,
	}
	if err := moveRepo.Create(pending); err != nil {
		t.Fatalf("create pending move failed: %v", err)
	}

	scheduled := &models.Move{
		MoveNo:          "PG-MOVE-002",
		UserID:          2,
		Name:            "pg scheduled move",
		PickupAddress:   "25 Barbican Road, Kingston",
		DeliveryAddress: "18 Braeton Parkway, Portmore",
		MoveDate:        moveDate.AddDate(0, 0, 5),
		Status:          constants.MoveStatusScheduled,
	}
	if err := moveRepo.Create(scheduled); err != nil {
		t.Fatalf("create scheduled move failed: %v", err)
	}

	rows, total, err := moveRepo.ListAdmin(MoveListFilter{Page: 1, Status: constants.MoveStatusScheduled})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].MoveNo != "PG-MOVE-002" {
		t.Fatalf("status filter want PG-MOVE-002 got total=%d len=%d", total, len(rows))
	}

	dateTo := moveDate.AddDate(0, 0, 1)
	rows, total, err = moveRepo.ListAdmin(MoveListFilter{Page: 1, MoveDateTo: &dateTo})
	if err != nil {
		t.Fatalf("list by date range failed: %v", err)
	}
	if total != 1 || rows[0].MoveNo != "PG-MOVE-001" {
		t.Fatalf("date filter want PG-MOVE-001 got total=%d", total)
	}

	counts, err := moveRepo.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.MoveStatusPending] != 1 || counts[constants.MoveStatusScheduled] != 1 {
		t.Fatalf("count by status unexpected: %+v", counts)
	}
}

func TestPostgresVersionedMoveUpdate(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	moveRepo := NewMoveRepository(db)

	move := &models.Move{
		MoveNo:          "PG-MOVE-010",
		UserID:          1,
		Name:            "pg versioned move",
		PickupAddress:   "a",
		DeliveryAddress: "b",
		MoveDate:        time.Now().UTC().AddDate(0, 0, 3),
		Status:          constants.MoveStatusPending,
	}
	if err := moveRepo.Create(move); err != nil {
		t.Fatalf("create move failed: %v", err)
	}

	err := moveRepo.UpdateVersioned(move.ID, move.Version, map[string]interface{}{
		"status": constants.MoveStatusApproved,
	})
	if err != nil {
		t.Fatalf("versioned update failed: %v", err)
	}

	// Stale version must not win a second time.
	err = moveRepo.UpdateVersioned(move.ID, move.Version, map[string]interface{}{
		"status": constants.MoveStatusCancelled,
	})
	if err == nil {
		t.Fatalf("stale versioned update should fail")
	}

	got, err := moveRepo.GetByID(move.ID)
	if err != nil {
		t.Fatalf("get move failed: %v", err)
	}
	if got.Status != constants.MoveStatusApproved {
		t.Fatalf("status want approved got %s", got.Status)
	}
}

func TestPostgresTrackingJournalOrdering(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	eventRepo := NewTrackingEventRepository(db)
	base := time.Now().UTC().Add(-time.Hour)

	events := []models.TrackingEvent{
		{MoveID: 7, EventType: constants.EventCreated, CreatedAt: base},
		{MoveID: 7, EventType: constants.EventApproved, CreatedAt: base.Add(10 * time.Minute)},
		{MoveID: 7, EventType: constants.EventLocationPing, CreatedAt: base.Add(20 * time.Minute)},
		{MoveID: 8, EventType: constants.EventCreated, CreatedAt: base},
	}
	for i := range events {
		if err := eventRepo.Create(&events[i]); err != nil {
			t.Fatalf("create event failed: %v", err)
		}
	}

	journal, err := eventRepo.ListByMove(7)
	if err != nil {
		t.Fatalf("list by move failed: %v", err)
	}
	if len(journal) != 3 {
		t.Fatalf("journal length want 3 got %d", len(journal))
	}
	for i := 1; i < len(journal); i++ {
		if journal[i].CreatedAt.Before(journal[i-1].CreatedAt) {
			t.Fatalf("journal out of order at %d", i)
		}
	}

	rows, total, err := eventRepo.List(TrackingEventListFilter{Page: 1, MoveID: 7, EventType: constants.EventLocationPing})
	if err != nil {
		t.Fatalf("list filtered events failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("filtered events want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresPerformanceSummary(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	perfRepo := NewPerformanceRepository(db)

	records := []models.MovePerformance{
		{MoveID: 1, EstimatedDuration: 3600, ActualDuration: 3300, OnTime: true},
		{MoveID: 2, EstimatedDuration: 3600, ActualDuration: 5400, OnTime: false},
		{MoveID: 3, EstimatedDuration: 7200, ActualDuration: 7000, OnTime: true},
	}
	for i := range records {
		if err := perfRepo.Create(&records[i]); err != nil {
			t.Fatalf("create performance record failed: %v", err)
		}
	}

	summary, err := perfRepo.Summary()
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalMoves != 3 || summary.OnTimeMoves != 2 {
		t.Fatalf("summary want 3/2 got %d/%d", summary.TotalMoves, summary.OnTimeMoves)
	}
	if summary.OnTimeRate < 0.66 || summary.OnTimeRate > 0.67 {
		t.Fatalf("on-time rate want ~0.6667 got %f", summary.OnTimeRate)
	}

	onTime := false
	rows, total, err := perfRepo.List(PerformanceListFilter{Page: 1, OnTime: &onTime})
	if err != nil {
		t.Fatalf("list late records failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].MoveID != 2 {
		t.Fatalf("late record filter want move 2 got total=%d", total)
	}
}
