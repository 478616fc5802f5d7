package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homedash/internal/core"
	"homedash/internal/result"
)

// DefaultQuickEntryHours is the workday length assumed by quick entries
// when the caller does not name one.
var DefaultQuickEntryHours = decimal.NewFromInt(8)

// IncomeService handles contracts and hourly income entries. The
// single-default-contract invariant is enforced here and in the
// repository: every default change runs as one atomic unset-then-set.
type IncomeService struct {
	repo   IncomeRepository
	events EventPublisher
}

// NewIncomeService creates an IncomeService. events may be nil when no
// broker is configured.
func NewIncomeService(repo IncomeRepository, events EventPublisher) *IncomeService {
	return &IncomeService{repo: repo, events: events}
}

// CreateContract validates and persists a new contract for the user.
// When the input marks it default, the repository demotes every other
// default of that user in the same storage transaction as the insert.
func (s *IncomeService) CreateContract(ctx context.Context, in core.CreateContractInput, userID string) result.Result[core.Contract] {
	if err := in.Validate(); err != nil {
		return result.Err[core.Contract](err)
	}

	now := time.Now().UTC()
	contract := core.Contract{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		HourlyRate:  in.HourlyRate,
		Description: in.Description,
		IsActive:    true,
		IsDefault:   in.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.repo.CreateContract(ctx, contract)
}

// GetContracts returns the user's active contracts, default first.
func (s *IncomeService) GetContracts(ctx context.Context, userID string) result.Result[[]core.Contract] {
	return s.repo.ListContracts(ctx, userID)
}

// GetDefaultContract returns the user's default contract, or nil when
// none is set. Absence is a valid state, not a failure.
func (s *IncomeService) GetDefaultContract(ctx context.Context, userID string) result.Result[*core.Contract] {
	return s.repo.DefaultContract(ctx, userID)
}

// SetDefaultContract promotes the named contract to default, demoting
// every other contract of the user atomically. Contracts owned by other
// users are reported as not found, never touched.
func (s *IncomeService) SetDefaultContract(ctx context.Context, contractID, userID string) result.Result[core.Contract] {
	existing := s.repo.ContractByID(ctx, contractID, userID)
	if existing.IsErr() {
		return result.Err[core.Contract](existing.Err())
	}
	if existing.Value() == nil {
		return result.Err[core.Contract](core.NewNotFoundError("contract", contractID))
	}

	set := s.repo.SetDefaultContract(ctx, contractID, userID)
	if set.IsErr() {
		return result.Err[core.Contract](set.Err())
	}
	if !set.Value() {
		return result.Err[core.Contract](core.NewNotFoundError("contract", contractID))
	}

	updated := *existing.Value()
	updated.IsDefault = true
	return result.Ok(updated)
}

// UpdateContract revises the fields present in upd. A default promotion
// inside the update routes through the same atomic unset-then-set used
// by SetDefaultContract.
func (s *IncomeService) UpdateContract(ctx context.Context, contractID, userID string, upd core.ContractUpdate) result.Result[core.Contract] {
	if err := upd.Validate(); err != nil {
		return result.Err[core.Contract](err)
	}

	existing := s.repo.ContractByID(ctx, contractID, userID)
	if existing.IsErr() {
		return result.Err[core.Contract](existing.Err())
	}
	if existing.Value() == nil {
		return result.Err[core.Contract](core.NewNotFoundError("contract", contractID))
	}

	promote := upd.IsDefault != nil && *upd.IsDefault
	if promote {
		// Apply the remaining fields first, then promote atomically.
		upd.IsDefault = nil
	}

	res := s.repo.UpdateContract(ctx, contractID, userID, upd)
	if res.IsErr() {
		return res
	}

	if promote {
		set := s.repo.SetDefaultContract(ctx, contractID, userID)
		if set.IsErr() {
			return result.Err[core.Contract](set.Err())
		}
		updated := res.Value()
		updated.IsDefault = true
		return result.Ok(updated)
	}

	return res
}

// CreateIncomeEntry logs hours against one of the user's own contracts.
// The total is the contract's rate at this moment times the hours, and
// stays frozen afterwards.
func (s *IncomeService) CreateIncomeEntry(ctx context.Context, in core.CreateIncomeEntryInput, userID string) result.Result[core.IncomeEntry] {
	if err := in.Validate(); err != nil {
		return result.Err[core.IncomeEntry](err)
	}

	contract := s.repo.ContractByID(ctx, in.ContractID, userID)
	if contract.IsErr() {
		return result.Err[core.IncomeEntry](contract.Err())
	}
	if contract.Value() == nil {
		return result.Err[core.IncomeEntry](core.NewDomainRuleError("create_income_entry", "contract not found"))
	}

	return s.createEntry(ctx, *contract.Value(), in.Date, in.HoursWorked, in.Description)
}

// CreateQuickEntry logs a day of work against the user's default
// contract. Without a default it fails with a domain-rule kind rather
// than picking an arbitrary contract. Zero hours means the default
// workday.
func (s *IncomeService) CreateQuickEntry(ctx context.Context, userID string, date core.Date, hours decimal.Decimal) result.Result[core.IncomeEntry] {
	if hours.IsZero() {
		hours = DefaultQuickEntryHours
	}
	if date.IsEmpty() || !hours.IsPositive() {
		return result.Err[core.IncomeEntry](core.NewValidationError("date", "date and hours must be set"))
	}

	def := s.repo.DefaultContract(ctx, userID)
	if def.IsErr() {
		return result.Err[core.IncomeEntry](def.Err())
	}
	if def.Value() == nil {
		return result.Err[core.IncomeEntry](core.NewDomainRuleError("create_quick_entry", "no default contract"))
	}

	return s.createEntry(ctx, *def.Value(), date, hours, "Quick entry")
}

// GetMonthlyIncome returns the user's entries whose date falls in the
// given calendar month, enriched with current contract titles and rates,
// plus month totals.
func (s *IncomeService) GetMonthlyIncome(ctx context.Context, userID string, year, month int) result.Result[core.MonthlyIncomeSummary] {
	if month < 1 || month > 12 {
		return result.Err[core.MonthlyIncomeSummary](core.NewValidationError("month", "must be between 1 and 12"))
	}
	return s.repo.MonthlyIncome(ctx, userID, year, month)
}

// DeleteIncomeEntry removes an entry. Both entry id and user id must
// match, so one user can never delete another's entries.
func (s *IncomeService) DeleteIncomeEntry(ctx context.Context, entryID, userID string) result.Result[bool] {
	deleted := s.repo.DeleteEntry(ctx, entryID, userID)
	if deleted.IsErr() {
		return deleted
	}
	if !deleted.Value() {
		return result.Err[bool](core.NewNotFoundError("income entry", entryID))
	}
	return deleted
}

func (s *IncomeService) createEntry(ctx context.Context, contract core.Contract, date core.Date, hours decimal.Decimal, description string) result.Result[core.IncomeEntry] {
	now := time.Now().UTC()
	entry := core.IncomeEntry{
		ID:          uuid.NewString(),
		UserID:      contract.UserID,
		ContractID:  contract.ID,
		Date:        date,
		HoursWorked: hours,
		TotalAmount: contract.HourlyRate.Mul(hours),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := s.repo.CreateEntry(ctx, entry)
	if res.IsErr() {
		return res
	}

	s.publishCreated(ctx, res.Value())
	return res
}

func (s *IncomeService) publishCreated(ctx context.Context, e core.IncomeEntry) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishIncomeEntryCreated(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish income entry event",
			"entry_id", e.ID, "error", err)
	}
}
