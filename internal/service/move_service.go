package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/config"
	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/geo"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/queue"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/routing"

	"gorm.io/gorm"
)

// MoveService drives the move lifecycle. Every transition is a single
// versioned write plus one journal append inside one transaction.
type MoveService struct {
	moveRepo        repository.MoveRepository
	quoteRepo       repository.QuoteRepository
	eventRepo       repository.TrackingEventRepository
	bookingRepo     repository.BookingRepository
	moverRepo       repository.MoverRepository
	performanceRepo repository.PerformanceRepository
	routeClient     *routing.Client
	estimator       *geo.Estimator
	queueClient     *queue.Client
	routingCfg      config.RoutingConfig
}

// NewMoveService creates a move service
func NewMoveService(
	moveRepo repository.MoveRepository,
	quoteRepo repository.QuoteRepository,
	eventRepo repository.TrackingEventRepository,
	bookingRepo repository.BookingRepository,
	moverRepo repository.MoverRepository,
	performanceRepo repository.PerformanceRepository,
	routeClient *routing.Client,
	estimator *geo.Estimator,
	queueClient *queue.Client,
	routingCfg config.RoutingConfig,
) *MoveService {
	return &MoveService{
		moveRepo:        moveRepo,
		quoteRepo:       quoteRepo,
		eventRepo:       eventRepo,
		bookingRepo:     bookingRepo,
		moverRepo:       moverRepo,
		performanceRepo: performanceRepo,
		routeClient:     routeClient,
		estimator:       estimator,
		queueClient:     queueClient,
		routingCfg:      routingCfg,
	}
}

// SubmitMoveInput user move request input
type SubmitMoveInput struct {
	UserID          uint
	Name            string
	PickupAddress   string
	DeliveryAddress string
	MoveDate        time.Time
}

// ScheduleMoveInput admin scheduling input
type ScheduleMoveInput struct {
	TimeOfDay string // HH:MM
	MoverID   uint
	Version   uint64
}

// MoveDetail a move with its derived presentation values
type MoveDetail struct {
	Move     *models.Move `json:"move"`
	Progress int          `json:"progress"`
	ETA      *time.Time   `json:"eta"`
}

// Submit creates a new move request in pending status and journals the
// created event. Addresses that match a known town are geocoded so
// scheduling can later query the route service.
func (s *MoveService) Submit(input SubmitMoveInput) (*models.Move, error) {
	if input.UserID == 0 {
		return nil, ErrMoveInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	pickup := strings.TrimSpace(input.PickupAddress)
	delivery := strings.TrimSpace(input.DeliveryAddress)
	if name == "" || pickup == "" || delivery == "" || input.MoveDate.IsZero() {
		return nil, ErrMoveInvalidInput
	}

	move := &models.Move{
		MoveNo:          generateMoveNo(),
		UserID:          input.UserID,
		Name:            name,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		MoveDate:        input.MoveDate,
		Status:          constants.MoveStatusPending,
	}
	if place, ok := geo.LookupPlace(pickup); ok {
		move.PickupLat = &place.Lat
		move.PickupLng = &place.Lng
	}
	if place, ok := geo.LookupPlace(delivery); ok {
		move.DeliveryLat = &place.Lat
		move.DeliveryLng = &place.Lng
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.moveRepo.WithTx(tx).Create(move); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Append(&models.TrackingEvent{
			MoveID:    move.ID,
			EventType: constants.EventCreated,
			Actor:     fmt.Sprintf("user:%d", input.UserID),
		})
	})
	if err != nil {
		logger.Errorw("move_submit_failed", "user_id", input.UserID, "error", err)
		return nil, ErrMoveCreateFailed
	}
	return move, nil
}

// Approve moves pending -> approved. Blocked until a usable quote
// exists: expired or superseded quotes cannot back an approval.
func (s *MoveService) Approve(moveID uint, version uint64, actor string) (*models.Move, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusPending {
		return nil, ErrMoveStatusInvalid
	}
	if move.QuoteID == nil {
		return nil, ErrMoveQuoteRequired
	}
	quote, err := s.quoteRepo.GetByID(*move.QuoteID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}

	now := time.Now()
	if !quoteUsable(quote, now) {
		return nil, ErrQuoteExpired
	}
	err = s.transition(move, version, constants.MoveStatusApproved, map[string]interface{}{
		"approved_at": now,
	}, &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventApproved,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}
	return s.getMove(moveID)
}

// Schedule moves approved -> scheduled: assigns the mover, computes
// timing via the route service (default duration on failure), and
// persists all four scheduling fields in one write.
func (s *MoveService) Schedule(moveID uint, input ScheduleMoveInput, actor string) (*models.Move, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusApproved {
		return nil, ErrMoveStatusInvalid
	}

	hour, minute, err := parseTimeOfDay(input.TimeOfDay)
	if err != nil {
		return nil, ErrMoveScheduleInput
	}
	if input.MoverID == 0 {
		return nil, ErrMoveScheduleInput
	}
	mover, err := s.moverRepo.GetByID(input.MoverID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if mover == nil {
		return nil, ErrMoverNotFound
	}
	if !mover.IsActive {
		return nil, ErrMoverInactive
	}

	duration, routeMeta, degraded := s.resolveRouteDuration(move)
	departure := atTimeOfDay(move.MoveDate, hour, minute)
	arrival := departure.Add(time.Duration(duration) * time.Second)
	timeOfDay := fmt.Sprintf("%02d:%02d", hour, minute)

	updates := map[string]interface{}{
		"scheduled_time":         timeOfDay,
		"assigned_mover_id":      mover.ID,
		"estimated_duration":     duration,
		"estimated_arrival_time": arrival,
	}
	if routeMeta != nil {
		updates["route_meta"] = models.JSON{
			"distance": routeMeta.DistanceMeters,
			"duration": routeMeta.DurationSeconds,
			"geometry": routeMeta.Geometry,
		}
	}

	event := &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventScheduled,
		Actor:     actor,
		Notes:     fmt.Sprintf("scheduled for %s with %s", timeOfDay, mover.Name),
	}
	if degraded {
		event.Notes += " (route service unavailable, default duration estimate used)"
	}

	if err := s.transition(move, input.Version, constants.MoveStatusScheduled, updates, event); err != nil {
		return nil, err
	}
	return s.getMove(moveID)
}

// Pay is the self-serve path into scheduled: the owning user pays the
// quote total, a confirmed booking is recorded, and timing is derived
// from the configured default start time instead of an admin choice.
func (s *MoveService) Pay(moveID uint, userID uint, version uint64) (*models.Move, error) {
	move, err := s.moveRepo.GetByIDAndUser(moveID, userID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusApproved {
		return nil, ErrMoveStatusInvalid
	}
	if move.QuoteID == nil {
		return nil, ErrMoveQuoteRequired
	}
	quote, err := s.quoteRepo.GetByID(*move.QuoteID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	if !quoteUsable(quote, time.Now()) {
		return nil, ErrQuoteExpired
	}

	hour, minute, err := parseTimeOfDay(s.routingCfg.DefaultStartTime)
	if err != nil {
		hour, minute = 9, 0
	}
	duration, routeMeta, degraded := s.resolveRouteDuration(move)
	departure := atTimeOfDay(move.MoveDate, hour, minute)
	arrival := departure.Add(time.Duration(duration) * time.Second)
	timeOfDay := fmt.Sprintf("%02d:%02d", hour, minute)

	updates := map[string]interface{}{
		"scheduled_time":         timeOfDay,
		"estimated_duration":     duration,
		"estimated_arrival_time": arrival,
	}
	if routeMeta != nil {
		updates["route_meta"] = models.JSON{
			"distance": routeMeta.DistanceMeters,
			"duration": routeMeta.DurationSeconds,
			"geometry": routeMeta.Geometry,
		}
	}

	event := &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventPaymentReceived,
		Actor:     fmt.Sprintf("user:%d", userID),
		Notes:     fmt.Sprintf("payment of %s received", quote.Total.String()),
	}
	if degraded {
		event.Notes += " (route service unavailable, default duration estimate used)"
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.bookingRepo.WithTx(tx).Create(&models.Booking{
			MoveID:        move.ID,
			QuoteID:       quote.ID,
			FinalPrice:    quote.Total,
			Status:        constants.BookingStatusConfirmed,
			PaymentStatus: constants.BookingPaymentPaid,
		}); err != nil {
			return err
		}
		accepted, err := s.quoteRepo.WithTx(tx).AcceptIfPending(quote.ID)
		if err != nil {
			return err
		}
		if !accepted {
			// The expiry worker beat us to the quote.
			return ErrQuoteExpired
		}
		updates["status"] = constants.MoveStatusScheduled
		if err := s.moveRepo.WithTx(tx).UpdateVersioned(move.ID, version, updates); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Append(event)
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrMoveVersionConflict
		}
		if errors.Is(err, ErrQuoteExpired) {
			return nil, ErrQuoteExpired
		}
		logger.Errorw("move_pay_failed", "move_id", move.ID, "error", err)
		return nil, ErrMoveUpdateFailed
	}
	return s.getMove(moveID)
}

// Start moves scheduled -> in_progress and stamps the actual start.
func (s *MoveService) Start(moveID uint, version uint64, actor string) (*models.Move, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusScheduled {
		return nil, ErrMoveStatusInvalid
	}

	now := time.Now()
	err = s.transition(move, version, constants.MoveStatusInProgress, map[string]interface{}{
		"actual_start_time": now,
	}, &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventStarted,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}
	return s.getMove(moveID)
}

// Complete moves in_progress -> completed, stamps the actual end, and
// hands the performance record off to the queue worker.
func (s *MoveService) Complete(moveID uint, version uint64, actor string) (*models.Move, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusInProgress {
		return nil, ErrMoveStatusInvalid
	}

	now := time.Now()
	err = s.transition(move, version, constants.MoveStatusCompleted, map[string]interface{}{
		"actual_end_time": now,
		"current_lat":     nil,
		"current_lng":     nil,
	}, &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventCompleted,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueMovePerformance(queue.MovePerformancePayload{MoveID: move.ID}); err != nil {
			logger.Errorw("move_performance_enqueue_failed", "move_id", move.ID, "error", err)
		}
	} else if err := s.RecordPerformance(moveID); err != nil {
		logger.Errorw("move_performance_record_failed", "move_id", move.ID, "error", err)
	}
	return s.getMove(moveID)
}

// RecordPerformance writes the estimated-versus-actual record for a
// completed move. Idempotent so the queue worker can retry.
func (s *MoveService) RecordPerformance(moveID uint) error {
	move, err := s.getMove(moveID)
	if err != nil {
		return err
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusCompleted {
		return ErrMoveStatusInvalid
	}
	if move.ActualStartTime == nil || move.ActualEndTime == nil {
		return ErrMoveStatusInvalid
	}
	exists, err := s.performanceRepo.ExistsForMove(move.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	actual := int64(move.ActualEndTime.Sub(*move.ActualStartTime).Seconds())
	estimated := int64(0)
	if move.EstimatedDuration != nil {
		estimated = *move.EstimatedDuration
	}
	return s.performanceRepo.Create(&models.MovePerformance{
		MoveID:            move.ID,
		EstimatedDuration: estimated,
		ActualDuration:    actual,
		OnTime:            actual <= estimated,
	})
}

// Cancel is permitted from pending, approved and scheduled.
func (s *MoveService) Cancel(moveID uint, version uint64, reason, actor string) (*models.Move, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	if !CanTransitionMove(move.Status, constants.MoveStatusCancelled) {
		return nil, ErrMoveStatusInvalid
	}

	now := time.Now()
	err = s.transition(move, version, constants.MoveStatusCancelled, map[string]interface{}{
		"cancelled_at":        now,
		"cancellation_reason": strings.TrimSpace(reason),
	}, &models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventCancelled,
		Actor:     actor,
		Notes:     strings.TrimSpace(reason),
	})
	if err != nil {
		return nil, err
	}
	return s.getMove(moveID)
}

// CancelByUser cancels a move on behalf of its owner.
func (s *MoveService) CancelByUser(moveID uint, userID uint, version uint64, reason string) (*models.Move, error) {
	move, err := s.moveRepo.GetByIDAndUser(moveID, userID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	return s.Cancel(moveID, version, reason, fmt.Sprintf("user:%d", userID))
}

// GetDetail returns a move with derived progress and ETA.
func (s *MoveService) GetDetail(moveID uint) (*MoveDetail, error) {
	move, err := s.getMove(moveID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(move), nil
}

// GetDetailForUser returns a move owned by the given user.
func (s *MoveService) GetDetailForUser(moveID uint, userID uint) (*MoveDetail, error) {
	move, err := s.moveRepo.GetByIDAndUser(moveID, userID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	return s.buildDetail(move), nil
}

// ListAdmin lists moves for the admin panel.
func (s *MoveService) ListAdmin(filter repository.MoveListFilter) ([]MoveDetail, int64, error) {
	moves, total, err := s.moveRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, ErrMoveFetchFailed
	}
	return s.buildDetails(moves), total, nil
}

// ListByUser lists a user's own moves.
func (s *MoveService) ListByUser(filter repository.MoveListFilter) ([]MoveDetail, int64, error) {
	moves, total, err := s.moveRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, ErrMoveFetchFailed
	}
	return s.buildDetails(moves), total, nil
}

// StatusCounts returns move counts by status for the dashboard.
func (s *MoveService) StatusCounts() (map[string]int64, error) {
	counts, err := s.moveRepo.CountByStatus()
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	return counts, nil
}

func (s *MoveService) buildDetail(move *models.Move) *MoveDetail {
	now := time.Now()
	return &MoveDetail{
		Move:     move,
		Progress: MoveProgress(move, now),
		ETA:      MoveETA(move),
	}
}

func (s *MoveService) buildDetails(moves []models.Move) []MoveDetail {
	now := time.Now()
	details := make([]MoveDetail, 0, len(moves))
	for i := range moves {
		details = append(details, MoveDetail{
			Move:     &moves[i],
			Progress: MoveProgress(&moves[i], now),
			ETA:      MoveETA(&moves[i]),
		})
	}
	return details
}

func (s *MoveService) getMove(moveID uint) (*models.Move, error) {
	move, err := s.moveRepo.GetByID(moveID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	return move, nil
}

// transition applies one versioned status write plus one journal
// append atomically. A version mismatch rejects the whole transition.
func (s *MoveService) transition(move *models.Move, version uint64, target string, updates map[string]interface{}, event *models.TrackingEvent) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = target

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.moveRepo.WithTx(tx).UpdateVersioned(move.ID, version, updates); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Append(event)
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return ErrMoveVersionConflict
		}
		logger.Errorw("move_transition_failed",
			"move_id", move.ID,
			"from", move.Status,
			"to", target,
			"error", err,
		)
		return ErrMoveUpdateFailed
	}
	return nil
}

// resolveRouteDuration asks the route service for a driving duration
// and degrades to the configured default when it cannot answer. The
// degradation is reported to the caller so it lands on the journal
// entry rather than disappearing into a log line.
func (s *MoveService) resolveRouteDuration(move *models.Move) (int64, *routing.Route, bool) {
	fallback := s.routingCfg.DefaultDurationSeconds
	if fallback <= 0 {
		fallback = constants.DefaultRouteDurationSeconds
	}
	if move.PickupLat == nil || move.PickupLng == nil || move.DeliveryLat == nil || move.DeliveryLng == nil {
		return fallback, nil, true
	}

	// The route client already enforces routing.timeout_ms on its HTTP
	// client, so no extra deadline is layered on top.
	route, err := s.routeClient.GetRoute(context.Background(), *move.PickupLat, *move.PickupLng, *move.DeliveryLat, *move.DeliveryLng)
	if err != nil {
		logger.Warnw("route_service_degraded",
			"move_id", move.ID,
			"fallback_seconds", fallback,
			"error", err,
		)
		return fallback, nil, true
	}
	return route.DurationSeconds, route, false
}

// quoteUsable reports whether a quote can still back an approval or a
// payment: it must be pending and inside its validity window. A quote
// past valid_until is treated as expired even before the expiry task
// has flipped its status.
func quoteUsable(quote *models.Quote, now time.Time) bool {
	if quote.Status != constants.QuoteStatusPending {
		return false
	}
	if quote.ValidUntil != nil && !quote.ValidUntil.After(now) {
		return false
	}
	return true
}

func parseTimeOfDay(value string) (int, int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, err
	}
	return parsed.Hour(), parsed.Minute(), nil
}

func atTimeOfDay(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func generateMoveNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("EG%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
