package service

import (
	"context"
	"fmt"
	"time"

	"github.com/egzit/egzit/internal/cache"
	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/geo"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/repository"
)

// TrackingService serves the tracking surface: the journal, live crew
// position and the derived progress/ETA/remaining-distance values.
type TrackingService struct {
	moveRepo        repository.MoveRepository
	eventRepo       repository.TrackingEventRepository
	estimator       *geo.Estimator
	livePositionTTL time.Duration
}

// NewTrackingService creates a tracking service
func NewTrackingService(moveRepo repository.MoveRepository, eventRepo repository.TrackingEventRepository, estimator *geo.Estimator, livePositionTTLSeconds int) *TrackingService {
	ttl := time.Duration(livePositionTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &TrackingService{
		moveRepo:        moveRepo,
		eventRepo:       eventRepo,
		estimator:       estimator,
		livePositionTTL: ttl,
	}
}

// TrackingView everything the tracking screen needs in one read
type TrackingView struct {
	Move               *models.Move           `json:"move"`
	Progress           int                    `json:"progress"`
	ETA                *time.Time             `json:"eta"`
	Events             []models.TrackingEvent `json:"events"`
	CurrentEvent       *models.TrackingEvent  `json:"current_event,omitempty"`
	RemainingKM        *float64               `json:"remaining_km,omitempty"`
	RemainingFormatted string                 `json:"remaining,omitempty"`
	LivePosition       *cache.LivePosition    `json:"live_position,omitempty"`
}

// GetView builds the tracking view for a move owned by the given user.
func (s *TrackingService) GetView(moveID uint, userID uint) (*TrackingView, error) {
	move, err := s.moveRepo.GetByIDAndUser(moveID, userID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	return s.buildView(move)
}

// ListEventsForUser pages through the journal of a move owned by the
// given user.
func (s *TrackingService) ListEventsForUser(moveID uint, userID uint, page, pageSize int) ([]models.TrackingEvent, int64, error) {
	move, err := s.moveRepo.GetByIDAndUser(moveID, userID)
	if err != nil {
		return nil, 0, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, 0, ErrMoveNotFound
	}
	return s.eventRepo.List(repository.TrackingEventListFilter{
		Page:     page,
		PageSize: pageSize,
		MoveID:   move.ID,
	})
}

// GetAdminView builds the tracking view without an ownership check.
func (s *TrackingService) GetAdminView(moveID uint) (*TrackingView, error) {
	move, err := s.moveRepo.GetByID(moveID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	return s.buildView(move)
}

func (s *TrackingService) buildView(move *models.Move) (*TrackingView, error) {
	events, err := s.eventRepo.ListByMove(move.ID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}

	now := time.Now()
	view := &TrackingView{
		Move:     move,
		Progress: MoveProgress(move, now),
		ETA:      MoveETA(move),
		Events:   events,
	}
	// the last journal entry is the display marker, the status column
	// stays authoritative
	if len(events) > 0 {
		view.CurrentEvent = &events[len(events)-1]
	}

	if pos, hit, err := cache.GetLivePosition(context.Background(), move.ID); err == nil && hit {
		view.LivePosition = pos
	}

	s.fillRemaining(view, move)
	return view, nil
}

func (s *TrackingService) fillRemaining(view *TrackingView, move *models.Move) {
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusInProgress {
		return
	}
	if move.DeliveryLat == nil || move.DeliveryLng == nil {
		return
	}
	lat, lng := move.CurrentLat, move.CurrentLng
	if view.LivePosition != nil {
		lat, lng = &view.LivePosition.Lat, &view.LivePosition.Lng
	}
	if lat == nil || lng == nil {
		return
	}
	km := s.estimator.DistanceKM(
		geo.Point{Lat: *lat, Lng: *lng},
		geo.Point{Lat: *move.DeliveryLat, Lng: *move.DeliveryLng},
	)
	view.RemainingKM = &km
	view.RemainingFormatted = geo.FormatDistance(km)
}

// ReportPosition records a crew GPS ping for an in-transit move: the
// move row keeps the latest fix, the redis cache serves reads with a
// TTL, and a location_ping entry lands on the journal.
func (s *TrackingService) ReportPosition(moveID uint, lat, lng float64, actor string) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrTrackingPositionInvalid
	}
	move, err := s.moveRepo.GetByID(moveID)
	if err != nil {
		return ErrMoveFetchFailed
	}
	if move == nil {
		return ErrMoveNotFound
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusInProgress {
		return ErrTrackingNotInTransit
	}

	if err := s.moveRepo.UpdatePosition(move.ID, lat, lng); err != nil {
		logger.Errorw("tracking_position_write_failed", "move_id", move.ID, "error", err)
		return ErrMoveUpdateFailed
	}
	if err := cache.SetLivePosition(context.Background(), &cache.LivePosition{
		MoveID:     move.ID,
		Lat:        lat,
		Lng:        lng,
		ReportedAt: time.Now().Unix(),
	}, s.livePositionTTL); err != nil {
		logger.Warnw("tracking_position_cache_failed", "move_id", move.ID, "error", err)
	}
	if err := s.eventRepo.Append(&models.TrackingEvent{
		MoveID:    move.ID,
		EventType: constants.EventLocationPing,
		Lat:       &lat,
		Lng:       &lng,
		Actor:     actor,
		Notes:     fmt.Sprintf("position %.5f,%.5f", lat, lng),
	}); err != nil {
		logger.Warnw("tracking_ping_journal_failed", "move_id", move.ID, "error", err)
	}
	return nil
}

// ListEvents lists journal entries with filters.
func (s *TrackingService) ListEvents(filter repository.TrackingEventListFilter) ([]models.TrackingEvent, int64, error) {
	return s.eventRepo.List(filter)
}
