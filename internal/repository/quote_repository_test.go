package repository

import (
	"testing"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupQuoteRepositoryTest(t *testing.T) *GormQuoteRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Quote{}); err != nil {
		t.Fatalf("migrate quotes failed: %v", err)
	}
	return NewQuoteRepository(db)
}

func createTestQuote(t *testing.T, repo *GormQuoteRepository, moveID uint, status string, validUntil *time.Time) *models.Quote {
	t.Helper()
	quote := &models.Quote{
		MoveID:     moveID,
		BaseFee:    models.NewMoneyFromDecimal(decimal.NewFromInt(15000)),
		Total:      models.NewMoneyFromDecimal(decimal.NewFromInt(15000)),
		Status:     status,
		ValidUntil: validUntil,
	}
	if err := repo.Create(quote); err != nil {
		t.Fatalf("create quote failed: %v", err)
	}
	return quote
}

func TestQuoteRepositoryExpireIfPending(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	past := time.Now().Add(-time.Hour)
	quote := createTestQuote(t, repo, 1, constants.QuoteStatusPending, &past)

	changed, err := repo.ExpireIfPending(quote.ID, time.Now())
	if err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected quote to expire")
	}

	got, err := repo.GetByID(quote.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.QuoteStatusExpired {
		t.Fatalf("expected expired, got %s", got.Status)
	}
}

func TestQuoteRepositoryExpireSkipsAccepted(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	past := time.Now().Add(-time.Hour)
	quote := createTestQuote(t, repo, 1, constants.QuoteStatusAccepted, &past)

	changed, err := repo.ExpireIfPending(quote.ID, time.Now())
	if err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if changed {
		t.Fatalf("accepted quote must not expire")
	}
}

func TestQuoteRepositoryExpireSkipsFutureValidity(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	future := time.Now().Add(24 * time.Hour)
	quote := createTestQuote(t, repo, 1, constants.QuoteStatusPending, &future)

	changed, err := repo.ExpireIfPending(quote.ID, time.Now())
	if err != nil {
		t.Fatalf("expire failed: %v", err)
	}
	if changed {
		t.Fatalf("quote inside validity window must not expire")
	}
}

func TestQuoteRepositorySupersedePending(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	old := createTestQuote(t, repo, 5, constants.QuoteStatusPending, nil)
	accepted := createTestQuote(t, repo, 5, constants.QuoteStatusAccepted, nil)
	latest := createTestQuote(t, repo, 5, constants.QuoteStatusPending, nil)

	if err := repo.SupersedePending(5, latest.ID); err != nil {
		t.Fatalf("supersede failed: %v", err)
	}

	gotOld, _ := repo.GetByID(old.ID)
	if gotOld.Status != constants.QuoteStatusSuperseded {
		t.Fatalf("expected superseded, got %s", gotOld.Status)
	}
	gotAccepted, _ := repo.GetByID(accepted.ID)
	if gotAccepted.Status != constants.QuoteStatusAccepted {
		t.Fatalf("accepted quote must stay accepted, got %s", gotAccepted.Status)
	}
	gotLatest, _ := repo.GetByID(latest.ID)
	if gotLatest.Status != constants.QuoteStatusPending {
		t.Fatalf("latest quote must stay pending, got %s", gotLatest.Status)
	}

	latestByMove, err := repo.GetLatestByMove(5)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latestByMove.ID != latest.ID {
		t.Fatalf("expected latest quote %d, got %d", latest.ID, latestByMove.ID)
	}
}

func TestQuoteRepositoryAcceptIfPending(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	future := time.Now().Add(24 * time.Hour)
	quote := createTestQuote(t, repo, 1, constants.QuoteStatusPending, &future)

	changed, err := repo.AcceptIfPending(quote.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected pending quote to be accepted")
	}

	got, err := repo.GetByID(quote.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.QuoteStatusAccepted {
		t.Fatalf("expected accepted, got %s", got.Status)
	}
}

func TestQuoteRepositoryAcceptSkipsExpired(t *testing.T) {
	repo := setupQuoteRepositoryTest(t)
	past := time.Now().Add(-time.Hour)
	quote := createTestQuote(t, repo, 1, constants.QuoteStatusExpired, &past)

	changed, err := repo.AcceptIfPending(quote.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if changed {
		t.Fatalf("expired quote must not become accepted")
	}

	got, err := repo.GetByID(quote.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != constants.QuoteStatusExpired {
		t.Fatalf("expected expired, got %s", got.Status)
	}
}
