// Package services implements the business logic of the dashboard:
// validation orchestration, invariant enforcement, derived values, and
// composition of repository calls into single results.
package services

import (
	"context"

	"homedash/internal/core"
	"homedash/internal/result"
)

// Ports for the persistence adapters. Services depend on these interfaces
// only; the SQLite implementations live in internal/storage and the tests
// substitute in-memory fakes.
type (
	// TransactionRepository persists spending records.
	TransactionRepository interface {
		// FindByID returns nil (not an error) when no row matches.
		FindByID(ctx context.Context, id string) result.Result[*core.Transaction]
		Create(ctx context.Context, tx core.Transaction) result.Result[core.Transaction]
		// ListByUser returns a user's transactions newest-first by
		// creation time; the empty slice when none exist.
		ListByUser(ctx context.Context, userID string) result.Result[[]core.Transaction]
		// SpendingByCategory groups and sums in the store, one row per
		// category with at least one transaction on or after since,
		// ordered by total descending.
		SpendingByCategory(ctx context.Context, userID string, since core.Date) result.Result[[]core.CategorySpending]
	}

	// TaskRepository persists tasks. List methods order by creation time
	// ascending so "first N" semantics stay deterministic.
	TaskRepository interface {
		FindByID(ctx context.Context, id string) result.Result[*core.Task]
		Create(ctx context.Context, task core.Task) result.Result[core.Task]
		// Update writes only the fields present in upd and fails with a
		// not-found kind when no row matches; never a silent no-op.
		Update(ctx context.Context, id string, upd core.TaskUpdate) result.Result[core.Task]
		Delete(ctx context.Context, id string) result.Result[bool]
		SetCompleted(ctx context.Context, id string, completed bool) result.Result[core.Task]
		ListByUser(ctx context.Context, userID string) result.Result[[]core.Task]
		ListPending(ctx context.Context, userID string) result.Result[[]core.Task]
		ListCompleted(ctx context.Context, userID string) result.Result[[]core.Task]
		ListOverdue(ctx context.Context, userID string, today core.Date) result.Result[[]core.Task]
		// Summary counts in the store against the supplied date so that
		// "overdue" stays a pure function of today plus stored state.
		Summary(ctx context.Context, userID string, today core.Date) result.Result[core.TaskSummary]
	}

	// IncomeRepository persists contracts and income entries and owns the
	// single-default-contract invariant: both default-flag operations run
	// their unset and set phases inside one storage transaction.
	IncomeRepository interface {
		CreateContract(ctx context.Context, c core.Contract) result.Result[core.Contract]
		// ListContracts returns active contracts, default first, then
		// newest first.
		ListContracts(ctx context.Context, userID string) result.Result[[]core.Contract]
		// ContractByID scopes by owner; nil when the pair does not match.
		ContractByID(ctx context.Context, contractID, userID string) result.Result[*core.Contract]
		// DefaultContract returns nil when the user has no default; that
		// is a valid state, not an error.
		DefaultContract(ctx context.Context, userID string) result.Result[*core.Contract]
		// SetDefaultContract unsets every default of the user and sets
		// the named contract, atomically. False when nothing matched.
		SetDefaultContract(ctx context.Context, contractID, userID string) result.Result[bool]
		UpdateContract(ctx context.Context, contractID, userID string, upd core.ContractUpdate) result.Result[core.Contract]
		CreateEntry(ctx context.Context, e core.IncomeEntry) result.Result[core.IncomeEntry]
		// MonthlyIncome aggregates one calendar month: entries joined
		// with current contract title and rate, plus summed totals.
		MonthlyIncome(ctx context.Context, userID string, year, month int) result.Result[core.MonthlyIncomeSummary]
		// DeleteEntry requires both ids to match; false when they don't.
		DeleteEntry(ctx context.Context, entryID, userID string) result.Result[bool]
	}

	// EventPublisher pushes domain events to the message broker. Create
	// paths treat publish failures as log-only; the write already
	// happened.
	EventPublisher interface {
		PublishTransactionCreated(ctx context.Context, tx core.Transaction) error
		PublishIncomeEntryCreated(ctx context.Context, e core.IncomeEntry) error
	}
)
