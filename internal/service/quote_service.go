package service

import (
	"errors"
	"strings"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/queue"
	"github.com/egzit/egzit/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteService creates and expires quotes. A quote is immutable after
// creation: re-quoting a move inserts a new row and supersedes the old
// one, so the historical record of what was offered never changes.
type QuoteService struct {
	quoteRepo    repository.QuoteRepository
	moveRepo     repository.MoveRepository
	eventRepo    repository.TrackingEventRepository
	queueClient  *queue.Client
	validityDays int
}

// NewQuoteService creates a quote service
func NewQuoteService(quoteRepo repository.QuoteRepository, moveRepo repository.MoveRepository, eventRepo repository.TrackingEventRepository, queueClient *queue.Client, validityDays int) *QuoteService {
	if validityDays <= 0 {
		validityDays = 7
	}
	return &QuoteService{
		quoteRepo:    quoteRepo,
		moveRepo:     moveRepo,
		eventRepo:    eventRepo,
		queueClient:  queueClient,
		validityDays: validityDays,
	}
}

// CreateQuoteInput admin quote input, six fee components
type CreateQuoteInput struct {
	MoveID       uint
	BaseFee      decimal.Decimal
	DistanceFee  decimal.Decimal
	WeightFee    decimal.Decimal
	SpecialItems decimal.Decimal
	Insurance    decimal.Decimal
	Tax          decimal.Decimal
	Notes        string
}

// Create issues a quote for a pending move. The persisted total is the
// component sum computed here, never recomputed on read.
func (s *QuoteService) Create(input CreateQuoteInput, actor string) (*models.Quote, error) {
	for _, component := range []decimal.Decimal{
		input.BaseFee, input.DistanceFee, input.WeightFee,
		input.SpecialItems, input.Insurance, input.Tax,
	} {
		if component.IsNegative() {
			return nil, ErrQuoteInvalidInput
		}
	}

	move, err := s.moveRepo.GetByID(input.MoveID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if move == nil {
		return nil, ErrMoveNotFound
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusPending {
		return nil, ErrMoveStatusInvalid
	}

	validUntil := time.Now().AddDate(0, 0, s.validityDays)
	quote := &models.Quote{
		MoveID:       move.ID,
		BaseFee:      models.NewMoneyFromDecimal(input.BaseFee),
		DistanceFee:  models.NewMoneyFromDecimal(input.DistanceFee),
		WeightFee:    models.NewMoneyFromDecimal(input.WeightFee),
		SpecialItems: models.NewMoneyFromDecimal(input.SpecialItems),
		Insurance:    models.NewMoneyFromDecimal(input.Insurance),
		Tax:          models.NewMoneyFromDecimal(input.Tax),
		ValidUntil:   &validUntil,
		Notes:        strings.TrimSpace(input.Notes),
		Status:       constants.QuoteStatusPending,
	}
	quote.Total = quote.SumComponents()

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.quoteRepo.WithTx(tx).Create(quote); err != nil {
			return err
		}
		if err := s.quoteRepo.WithTx(tx).SupersedePending(move.ID, quote.ID); err != nil {
			return err
		}
		if err := s.moveRepo.WithTx(tx).UpdateVersioned(move.ID, move.Version, map[string]interface{}{
			"quote_id": quote.ID,
		}); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Append(&models.TrackingEvent{
			MoveID:    move.ID,
			EventType: constants.EventQuoteSent,
			Actor:     actor,
			Notes:     "quote total " + quote.Total.String(),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrMoveVersionConflict
		}
		logger.Errorw("quote_create_failed", "move_id", move.ID, "error", err)
		return nil, ErrQuoteCreateFailed
	}

	if err := s.queueClient.EnqueueQuoteExpire(queue.QuoteExpirePayload{QuoteID: quote.ID}, time.Until(validUntil)); err != nil {
		logger.Errorw("quote_expire_enqueue_failed", "quote_id", quote.ID, "error", err)
	}
	return quote, nil
}

// Expire marks a quote expired if it is still pending past its
// validity window. Called by the queue worker; safe to retry.
func (s *QuoteService) Expire(quoteID uint) error {
	changed, err := s.quoteRepo.ExpireIfPending(quoteID, time.Now())
	if err != nil {
		return err
	}
	if changed {
		logger.Infow("quote_expired", "quote_id", quoteID)
	}
	return nil
}

// GetByID fetches a quote
func (s *QuoteService) GetByID(quoteID uint) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, ErrMoveFetchFailed
	}
	if quote == nil {
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

// List lists quotes
func (s *QuoteService) List(filter repository.QuoteListFilter) ([]models.Quote, int64, error) {
	return s.quoteRepo.List(filter)
}
