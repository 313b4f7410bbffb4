package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/egzit/egzit/internal/config"
	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/geo"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/routing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMoveServiceTest(t *testing.T) (*MoveService, *QuoteService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:move_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Move{},
		&models.Quote{},
		&models.Booking{},
		&models.Mover{},
		&models.TrackingEvent{},
		&models.MovePerformance{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	moveRepo := repository.NewMoveRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	eventRepo := repository.NewTrackingEventRepository(db)
	routingCfg := config.RoutingConfig{
		DefaultDurationSeconds: 1800,
		DefaultStartTime:       "09:00",
	}
	moveSvc := NewMoveService(
		moveRepo,
		quoteRepo,
		eventRepo,
		repository.NewBookingRepository(db),
		repository.NewMoverRepository(db),
		repository.NewPerformanceRepository(db),
		routing.NewClient(routingCfg),
		geo.NewEstimator(),
		nil,
		routingCfg,
	)
	quoteSvc := NewQuoteService(quoteRepo, moveRepo, eventRepo, nil, 7)
	return moveSvc, quoteSvc, db
}

func submitTestMove(t *testing.T, svc *MoveService, userID uint) *models.Move {
	t.Helper()
	move, err := svc.Submit(SubmitMoveInput{
		UserID:          userID,
		Name:            "Three bedroom house",
		PickupAddress:   "12 Hope Road, Kingston",
		DeliveryAddress: "4 Gloucester Avenue, Montego Bay",
		MoveDate:        time.Now().AddDate(0, 0, 14),
	})
	if err != nil {
		t.Fatalf("submit move failed: %v", err)
	}
	return move
}

func quoteTestMove(t *testing.T, svc *QuoteService, moveID uint) *models.Quote {
	t.Helper()
	quote, err := svc.Create(CreateQuoteInput{
		MoveID:       moveID,
		BaseFee:      decimal.RequireFromString("100.00"),
		DistanceFee:  decimal.RequireFromString("250.00"),
		WeightFee:    decimal.RequireFromString("80.00"),
		SpecialItems: decimal.RequireFromString("40.00"),
		Insurance:    decimal.RequireFromString("60.00"),
		Tax:          decimal.RequireFromString("53.00"),
	}, "admin:1")
	if err != nil {
		t.Fatalf("create quote failed: %v", err)
	}
	return quote
}

func seedTestMover(t *testing.T, db *gorm.DB, vehicleClass string, active bool) *models.Mover {
	t.Helper()
	mover := &models.Mover{
		Name:         "Island Movers",
		Phone:        "876-555-0101",
		VehicleClass: vehicleClass,
		IsActive:     active,
	}
	if err := db.Create(mover).Error; err != nil {
		t.Fatalf("create mover failed: %v", err)
	}
	return mover
}

func currentMove(t *testing.T, svc *MoveService, moveID uint) *models.Move {
	t.Helper()
	detail, err := svc.GetDetail(moveID)
	if err != nil {
		t.Fatalf("get move failed: %v", err)
	}
	return detail.Move
}

func TestMoveServiceSubmit(t *testing.T) {
	svc, _, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)

	if move.ID == 0 || move.MoveNo == "" {
		t.Fatalf("invalid move result: %+v", move)
	}
	if move.Status != constants.MoveStatusPending {
		t.Fatalf("expected pending status, got: %s", move.Status)
	}
	if move.PickupLat == nil || move.DeliveryLat == nil {
		t.Fatalf("expected known towns to be geocoded")
	}

	var events []models.TrackingEvent
	if err := db.Where("move_id = ?", move.ID).Find(&events).Error; err != nil {
		t.Fatalf("load events failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != constants.EventCreated {
		t.Fatalf("expected a single created event, got: %+v", events)
	}
	if events[0].Actor != "user:7" {
		t.Fatalf("unexpected event actor: %s", events[0].Actor)
	}
}

func TestMoveServiceSubmitValidation(t *testing.T) {
	svc, _, _ := setupMoveServiceTest(t)
	_, err := svc.Submit(SubmitMoveInput{
		UserID:        7,
		Name:          "Missing delivery",
		PickupAddress: "Kingston",
		MoveDate:      time.Now(),
	})
	if !errors.Is(err, ErrMoveInvalidInput) {
		t.Fatalf("expected ErrMoveInvalidInput, got: %v", err)
	}
	_, err = svc.Submit(SubmitMoveInput{
		Name:            "No user",
		PickupAddress:   "Kingston",
		DeliveryAddress: "Negril",
		MoveDate:        time.Now(),
	})
	if !errors.Is(err, ErrMoveInvalidInput) {
		t.Fatalf("expected ErrMoveInvalidInput for zero user, got: %v", err)
	}
}

func TestMoveServiceApproveRequiresQuote(t *testing.T) {
	svc, quoteSvc, _ := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)

	if _, err := svc.Approve(move.ID, move.Version, "admin:1"); !errors.Is(err, ErrMoveQuoteRequired) {
		t.Fatalf("expected ErrMoveQuoteRequired, got: %v", err)
	}

	quoteTestMove(t, quoteSvc, move.ID)
	move = currentMove(t, svc, move.ID)
	approved, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.MoveStatusApproved {
		t.Fatalf("expected approved status, got: %s", approved.Status)
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("expected approved_at to be stamped")
	}
}

func TestMoveServiceLifecycleFullFlow(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quote := quoteTestMove(t, quoteSvc, move.ID)
	mover := seedTestMover(t, db, constants.VehicleClassTruck, true)

	move = currentMove(t, svc, move.ID)
	if move.QuoteID == nil || *move.QuoteID != quote.ID {
		t.Fatalf("expected quote to be attached to move")
	}

	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	move, err = svc.Schedule(move.ID, ScheduleMoveInput{
		TimeOfDay: "08:30",
		MoverID:   mover.ID,
		Version:   move.Version,
	}, "admin:1")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if move.Status != constants.MoveStatusScheduled {
		t.Fatalf("expected scheduled status, got: %s", move.Status)
	}
	if move.ScheduledTime == nil || *move.ScheduledTime != "08:30" {
		t.Fatalf("expected scheduled_time 08:30, got: %v", move.ScheduledTime)
	}
	if move.AssignedMoverID == nil || *move.AssignedMoverID != mover.ID {
		t.Fatalf("expected assigned mover %d, got: %v", mover.ID, move.AssignedMoverID)
	}
	if move.EstimatedDuration == nil || *move.EstimatedDuration != 1800 {
		t.Fatalf("expected fallback duration 1800, got: %v", move.EstimatedDuration)
	}
	if move.EstimatedArrivalTime == nil {
		t.Fatalf("expected estimated arrival to be set")
	}
	departure := time.Date(move.MoveDate.Year(), move.MoveDate.Month(), move.MoveDate.Day(), 8, 30, 0, 0, move.MoveDate.Location())
	if !move.EstimatedArrivalTime.Equal(departure.Add(30 * time.Minute)) {
		t.Fatalf("expected arrival at departure+30m, got: %v", move.EstimatedArrivalTime)
	}

	move, err = svc.Start(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if move.Status != constants.MoveStatusInProgress || move.ActualStartTime == nil {
		t.Fatalf("expected in_progress with actual start, got: %+v", move)
	}

	move, err = svc.Complete(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if move.Status != constants.MoveStatusCompleted || move.ActualEndTime == nil {
		t.Fatalf("expected completed with actual end, got: %+v", move)
	}

	var events []models.TrackingEvent
	if err := db.Where("move_id = ?", move.ID).Order("created_at asc, id asc").Find(&events).Error; err != nil {
		t.Fatalf("load events failed: %v", err)
	}
	wantTypes := []string{
		constants.EventCreated,
		constants.EventQuoteSent,
		constants.EventApproved,
		constants.EventScheduled,
		constants.EventStarted,
		constants.EventCompleted,
	}
	if len(events) != len(wantTypes) {
		t.Fatalf("expected %d events, got %d: %+v", len(wantTypes), len(events), events)
	}
	for i, want := range wantTypes {
		if events[i].EventType != want {
			t.Fatalf("event %d: expected %s, got %s", i, want, events[i].EventType)
		}
	}

	// The queue is disabled in tests, so the performance record is
	// written synchronously on completion.
	var perf models.MovePerformance
	if err := db.Where("move_id = ?", move.ID).First(&perf).Error; err != nil {
		t.Fatalf("load performance failed: %v", err)
	}
	if perf.EstimatedDuration != 1800 {
		t.Fatalf("expected estimated duration 1800, got: %d", perf.EstimatedDuration)
	}
	if !perf.OnTime {
		t.Fatalf("expected an instant test run to count as on time")
	}
}

func TestMoveServiceScheduleDegradedRouteNote(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quoteTestMove(t, quoteSvc, move.ID)
	mover := seedTestMover(t, db, constants.VehicleClassTruck, true)

	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "10:00", MoverID: mover.ID, Version: move.Version}, "admin:1"); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	var event models.TrackingEvent
	if err := db.Where("move_id = ? AND event_type = ?", move.ID, constants.EventScheduled).First(&event).Error; err != nil {
		t.Fatalf("load scheduled event failed: %v", err)
	}
	// No route service is configured in tests, so the journal entry
	// must carry the degradation note.
	if !strings.Contains(event.Notes, "route service unavailable") {
		t.Fatalf("expected degradation note on scheduled event, got: %q", event.Notes)
	}
}

func TestMoveServiceScheduleValidation(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quoteTestMove(t, quoteSvc, move.ID)
	inactive := seedTestMover(t, db, constants.VehicleClassCar, false)

	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "25:00", MoverID: inactive.ID, Version: move.Version}, "admin:1"); !errors.Is(err, ErrMoveScheduleInput) {
		t.Fatalf("expected ErrMoveScheduleInput for bad time, got: %v", err)
	}
	if _, err := svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "10:00", Version: move.Version}, "admin:1"); !errors.Is(err, ErrMoveScheduleInput) {
		t.Fatalf("expected ErrMoveScheduleInput for missing mover, got: %v", err)
	}
	if _, err := svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "10:00", MoverID: inactive.ID, Version: move.Version}, "admin:1"); !errors.Is(err, ErrMoverInactive) {
		t.Fatalf("expected ErrMoverInactive, got: %v", err)
	}
	if _, err := svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "10:00", MoverID: inactive.ID + 100, Version: move.Version}, "admin:1"); !errors.Is(err, ErrMoverNotFound) {
		t.Fatalf("expected ErrMoverNotFound, got: %v", err)
	}
}

func TestMoveServicePay(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quote := quoteTestMove(t, quoteSvc, move.ID)

	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// A stranger cannot pay for someone else's move.
	if _, err := svc.Pay(move.ID, 99, move.Version); !errors.Is(err, ErrMoveNotFound) {
		t.Fatalf("expected ErrMoveNotFound for wrong owner, got: %v", err)
	}

	paid, err := svc.Pay(move.ID, 7, move.Version)
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if paid.Status != constants.MoveStatusScheduled {
		t.Fatalf("expected scheduled after payment, got: %s", paid.Status)
	}
	if paid.ScheduledTime == nil || *paid.ScheduledTime != "09:00" {
		t.Fatalf("expected default start time 09:00, got: %v", paid.ScheduledTime)
	}
	if paid.EstimatedDuration == nil || paid.EstimatedArrivalTime == nil {
		t.Fatalf("expected timing fields after payment: %+v", paid)
	}

	var booking models.Booking
	if err := db.Where("move_id = ?", move.ID).First(&booking).Error; err != nil {
		t.Fatalf("load booking failed: %v", err)
	}
	if booking.QuoteID != quote.ID || !booking.FinalPrice.Equal(quote.Total.Decimal) {
		t.Fatalf("expected booking locked to quote total, got: %+v", booking)
	}
	if booking.Status != constants.BookingStatusConfirmed || booking.PaymentStatus != constants.BookingPaymentPaid {
		t.Fatalf("unexpected booking state: %+v", booking)
	}

	var stored models.Quote
	if err := db.First(&stored, quote.ID).Error; err != nil {
		t.Fatalf("load quote failed: %v", err)
	}
	if stored.Status != constants.QuoteStatusAccepted {
		t.Fatalf("expected accepted quote after payment, got: %s", stored.Status)
	}

	// Paying twice is rejected: the move is no longer approved.
	if _, err := svc.Pay(move.ID, 7, paid.Version); !errors.Is(err, ErrMoveStatusInvalid) {
		t.Fatalf("expected ErrMoveStatusInvalid on double pay, got: %v", err)
	}
}

func TestMoveServiceCancelRules(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)

	// Cancel from pending works and records the reason.
	move := submitTestMove(t, svc, 7)
	cancelled, err := svc.Cancel(move.ID, move.Version, "changed plans", "admin:1")
	if err != nil {
		t.Fatalf("cancel from pending failed: %v", err)
	}
	if cancelled.Status != constants.MoveStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled with timestamp, got: %+v", cancelled)
	}
	if cancelled.CancellationReason != "changed plans" {
		t.Fatalf("expected cancellation reason, got: %q", cancelled.CancellationReason)
	}

	// Cancel from in_progress is forbidden.
	mover := seedTestMover(t, db, constants.VehicleClassTruck, true)
	move = submitTestMove(t, svc, 7)
	quoteTestMove(t, quoteSvc, move.ID)
	move = currentMove(t, svc, move.ID)
	move, err = svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	move, err = svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "09:00", MoverID: mover.ID, Version: move.Version}, "admin:1")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	move, err = svc.Start(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.Cancel(move.ID, move.Version, "too late", "admin:1"); !errors.Is(err, ErrMoveStatusInvalid) {
		t.Fatalf("expected ErrMoveStatusInvalid cancelling in transit, got: %v", err)
	}
}

func TestMoveServiceCancelByUserOwnership(t *testing.T) {
	svc, _, _ := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)

	if _, err := svc.CancelByUser(move.ID, 99, move.Version, "not mine"); !errors.Is(err, ErrMoveNotFound) {
		t.Fatalf("expected ErrMoveNotFound for wrong owner, got: %v", err)
	}
	cancelled, err := svc.CancelByUser(move.ID, 7, move.Version, "found a cheaper option")
	if err != nil {
		t.Fatalf("cancel by owner failed: %v", err)
	}
	if cancelled.Status != constants.MoveStatusCancelled {
		t.Fatalf("expected cancelled, got: %s", cancelled.Status)
	}
}

func TestMoveServiceVersionConflict(t *testing.T) {
	svc, quoteSvc, _ := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quoteTestMove(t, quoteSvc, move.ID)
	move = currentMove(t, svc, move.ID)

	// First writer wins.
	if _, err := svc.Approve(move.ID, move.Version, "admin:1"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	// A second admin cancelling against the pre-approve version loses.
	if _, err := svc.Cancel(move.ID, move.Version, "stale", "admin:2"); !errors.Is(err, ErrMoveVersionConflict) {
		t.Fatalf("expected ErrMoveVersionConflict, got: %v", err)
	}

	// A refreshed read succeeds.
	fresh := currentMove(t, svc, move.ID)
	if _, err := svc.Cancel(fresh.ID, fresh.Version, "second look", "admin:2"); err != nil {
		t.Fatalf("cancel with fresh version failed: %v", err)
	}
}

func TestMoveServiceRecordPerformanceIdempotent(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	mover := seedTestMover(t, db, constants.VehicleClassTruck, true)
	move := submitTestMove(t, svc, 7)
	quoteTestMove(t, quoteSvc, move.ID)
	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	move, err = svc.Schedule(move.ID, ScheduleMoveInput{TimeOfDay: "09:00", MoverID: mover.ID, Version: move.Version}, "admin:1")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	move, err = svc.Start(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.Complete(move.ID, move.Version, "admin:1"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// Retrying the worker path must not duplicate the record.
	if err := svc.RecordPerformance(move.ID); err != nil {
		t.Fatalf("record performance retry failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.MovePerformance{}).Where("move_id = ?", move.ID).Count(&count).Error; err != nil {
		t.Fatalf("count performance failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single performance record, got: %d", count)
	}
}

func TestMoveServiceListAndCounts(t *testing.T) {
	svc, _, _ := setupMoveServiceTest(t)
	first := submitTestMove(t, svc, 7)
	submitTestMove(t, svc, 7)
	submitTestMove(t, svc, 8)
	if _, err := svc.Cancel(first.ID, first.Version, "", "admin:1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	mine, total, err := svc.ListByUser(repository.MoveListFilter{UserID: 7, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(mine) != 2 {
		t.Fatalf("expected 2 moves for user 7, got total=%d len=%d", total, len(mine))
	}

	pendingOnly, total, err := svc.ListAdmin(repository.MoveListFilter{Status: constants.MoveStatusPending, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(pendingOnly) != 2 {
		t.Fatalf("expected 2 pending moves, got total=%d len=%d", total, len(pendingOnly))
	}

	counts, err := svc.StatusCounts()
	if err != nil {
		t.Fatalf("status counts failed: %v", err)
	}
	if counts[constants.MoveStatusPending] != 2 || counts[constants.MoveStatusCancelled] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestMoveServiceApproveRejectsExpiredQuote(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quote := quoteTestMove(t, quoteSvc, move.ID)

	if err := db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		Update("status", constants.QuoteStatusExpired).Error; err != nil {
		t.Fatalf("expire quote failed: %v", err)
	}

	move = currentMove(t, svc, move.ID)
	if _, err := svc.Approve(move.ID, move.Version, "admin:1"); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got: %v", err)
	}
	if got := currentMove(t, svc, move.ID); got.Status != constants.MoveStatusPending {
		t.Fatalf("expected move to stay pending, got: %s", got.Status)
	}

	// A fresh quote supersedes the expired one and unblocks approval.
	quoteTestMove(t, quoteSvc, move.ID)
	move = currentMove(t, svc, move.ID)
	if _, err := svc.Approve(move.ID, move.Version, "admin:1"); err != nil {
		t.Fatalf("approve after re-quote failed: %v", err)
	}
}

func TestMoveServicePayRejectsExpiredQuote(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quote := quoteTestMove(t, quoteSvc, move.ID)

	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Expire the quote after approval, as the expiry task would.
	if err := db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		Update("status", constants.QuoteStatusExpired).Error; err != nil {
		t.Fatalf("expire quote failed: %v", err)
	}

	if _, err := svc.Pay(move.ID, 7, move.Version); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired, got: %v", err)
	}

	// The rejected payment must leave no trace: the move stays
	// approved, the quote stays expired, nothing is booked.
	if got := currentMove(t, svc, move.ID); got.Status != constants.MoveStatusApproved {
		t.Fatalf("expected move to stay approved, got: %s", got.Status)
	}
	var stored models.Quote
	if err := db.First(&stored, quote.ID).Error; err != nil {
		t.Fatalf("load quote failed: %v", err)
	}
	if stored.Status != constants.QuoteStatusExpired {
		t.Fatalf("expected quote to stay expired, got: %s", stored.Status)
	}
	var bookings int64
	if err := db.Model(&models.Booking{}).Where("move_id = ?", move.ID).Count(&bookings).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookings != 0 {
		t.Fatalf("expected no booking for rejected payment, got %d", bookings)
	}
}

func TestMoveServicePayRejectsLapsedQuote(t *testing.T) {
	svc, quoteSvc, db := setupMoveServiceTest(t)
	move := submitTestMove(t, svc, 7)
	quote := quoteTestMove(t, quoteSvc, move.ID)

	move = currentMove(t, svc, move.ID)
	move, err := svc.Approve(move.ID, move.Version, "admin:1")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Push valid_until into the past while the status is still
	// pending: the guard must not wait for the expiry task.
	lapsed := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		Update("valid_until", lapsed).Error; err != nil {
		t.Fatalf("lapse quote failed: %v", err)
	}

	if _, err := svc.Pay(move.ID, 7, move.Version); !errors.Is(err, ErrQuoteExpired) {
		t.Fatalf("expected ErrQuoteExpired for lapsed quote, got: %v", err)
	}
	var stored models.Quote
	if err := db.First(&stored, quote.ID).Error; err != nil {
		t.Fatalf("load quote failed: %v", err)
	}
	if stored.Status == constants.QuoteStatusAccepted {
		t.Fatalf("lapsed quote must not become accepted")
	}
}
