package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"homedash/internal/core"
	"homedash/internal/result"
)

// TransactionService handles spending records: creation, per-user
// listing, and category analysis.
type TransactionService struct {
	repo   TransactionRepository
	events EventPublisher
}

// NewTransactionService creates a TransactionService. events may be nil
// when no broker is configured.
func NewTransactionService(repo TransactionRepository, events EventPublisher) *TransactionService {
	return &TransactionService{repo: repo, events: events}
}

// CreateTransaction validates the input, assigns id and timestamp, and
// persists the record. Validation failures never touch storage.
func (s *TransactionService) CreateTransaction(ctx context.Context, in core.CreateTransactionInput) result.Result[core.Transaction] {
	if err := in.Validate(); err != nil {
		return result.Err[core.Transaction](err)
	}

	tx := core.Transaction{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   time.Now().UTC(),
	}

	res := s.repo.Create(ctx, tx)
	if res.IsErr() {
		return res
	}

	s.publishCreated(ctx, res.Value())
	return res
}

// GetTransactionsByUser returns all of a user's transactions newest
// first; an empty list when none exist.
func (s *TransactionService) GetTransactionsByUser(ctx context.Context, userID string) result.Result[[]core.Transaction] {
	return s.repo.ListByUser(ctx, userID)
}

// AnalyzeSpendingByCategory aggregates the trailing days-day window
// ending today: one row per category with spending, ordered by total
// descending. Categories without transactions in the window are omitted.
func (s *TransactionService) AnalyzeSpendingByCategory(ctx context.Context, userID string, days int) result.Result[[]core.CategorySpending] {
	since := core.Today().AddDays(-days)
	return s.repo.SpendingByCategory(ctx, userID, since)
}

func (s *TransactionService) publishCreated(ctx context.Context, tx core.Transaction) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionCreated(ctx, tx); err != nil {
		// The record is already persisted; the event stream catches up
		// on the next export cycle.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"transaction_id", tx.ID, "error", err)
	}
}
