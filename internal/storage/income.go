package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"homedash/internal/core"
	"homedash/internal/result"
	"homedash/internal/services"
)

// IncomeStore is the SQLite-backed repository for contracts and income
// entries. The single-default-contract invariant lives here: the two
// operations that touch the default flag run their unset and set phases
// inside one database transaction, so a failure partway leaves at most
// one default in place and concurrent promotions resolve to last write
// wins.
type IncomeStore struct {
	db *sql.DB
}

var _ services.IncomeRepository = (*IncomeStore)(nil)

const contractColumns = "id, user_id, title, hourly_rate_cents, description, is_active, is_default, created_at, updated_at"

func (s *IncomeStore) CreateContract(ctx context.Context, c core.Contract) result.Result[core.Contract] {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result.Err[core.Contract](core.NewStorageError("create_contract", err))
	}
	defer tx.Rollback()

	// Demote any existing default before the new row exists; the insert
	// below then becomes the only default.
	if c.IsDefault {
		_, err := tx.ExecContext(ctx, `
			UPDATE contracts SET is_default = 0, updated_at = ?
			WHERE user_id = ? AND is_default = 1`,
			formatTime(c.UpdatedAt), c.UserID)
		if err != nil {
			return result.Err[core.Contract](core.NewStorageError("create_contract", err))
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contracts (id, user_id, title, hourly_rate_cents, description, is_active, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.HourlyRate.Cents, nullString(c.Description),
		boolToInt(c.IsActive), boolToInt(c.IsDefault),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return result.Err[core.Contract](core.NewStorageError("create_contract", err))
	}

	if err := tx.Commit(); err != nil {
		return result.Err[core.Contract](core.NewStorageError("create_contract", err))
	}

	slog.InfoContext(ctx, "Contract saved",
		"id", c.ID,
		"user_id", c.UserID,
		"is_default", c.IsDefault)

	return result.Ok(c)
}

func (s *IncomeStore) ListContracts(ctx context.Context, userID string) result.Result[[]core.Contract] {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+contractColumns+` FROM contracts
		WHERE user_id = ? AND is_active = 1
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return result.Err[[]core.Contract](core.NewStorageError("list_contracts", err))
	}
	defer rows.Close()

	contracts := []core.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return result.Err[[]core.Contract](core.NewStorageError("list_contracts", err))
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]core.Contract](core.NewStorageError("list_contracts", err))
	}

	return result.Ok(contracts)
}

func (s *IncomeStore) ContractByID(ctx context.Context, contractID, userID string) result.Result[*core.Contract] {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id = ? AND user_id = ?",
		contractID, userID)

	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return result.Ok[*core.Contract](nil)
	}
	if err != nil {
		return result.Err[*core.Contract](core.NewStorageError("find_contract", err))
	}
	return result.Ok(&c)
}

func (s *IncomeStore) DefaultContract(ctx context.Context, userID string) result.Result[*core.Contract] {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+contractColumns+` FROM contracts
		WHERE user_id = ? AND is_default = 1 AND is_active = 1
		LIMIT 1`, userID)

	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return result.Ok[*core.Contract](nil)
	}
	if err != nil {
		return result.Err[*core.Contract](core.NewStorageError("default_contract", err))
	}
	return result.Ok(&c)
}

func (s *IncomeStore) SetDefaultContract(ctx context.Context, contractID, userID string) result.Result[bool] {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result.Err[bool](core.NewStorageError("set_default_contract", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE contracts SET is_default = 0 WHERE user_id = ?", userID); err != nil {
		return result.Err[bool](core.NewStorageError("set_default_contract", err))
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE contracts SET is_default = 1 WHERE id = ? AND user_id = ?",
		contractID, userID)
	if err != nil {
		return result.Err[bool](core.NewStorageError("set_default_contract", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return result.Err[bool](core.NewStorageError("set_default_contract", err))
	}
	if affected == 0 {
		// Unknown contract: roll back so the unset phase does not strip
		// the user's existing default.
		return result.Ok(false)
	}

	if err := tx.Commit(); err != nil {
		return result.Err[bool](core.NewStorageError("set_default_contract", err))
	}

	slog.InfoContext(ctx, "Default contract changed",
		"contract_id", contractID,
		"user_id", userID)

	return result.Ok(true)
}

func (s *IncomeStore) UpdateContract(ctx context.Context, contractID, userID string, upd core.ContractUpdate) result.Result[core.Contract] {
	if upd.Empty() {
		return s.mustFindContract(ctx, contractID, userID, "update_contract")
	}

	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.HourlyRate != nil {
		sets = append(sets, "hourly_rate_cents = ?")
		args = append(args, upd.HourlyRate.Cents)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*upd.Description))
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, boolToInt(*upd.IsActive))
	}
	if upd.IsDefault != nil {
		sets = append(sets, "is_default = ?")
		args = append(args, boolToInt(*upd.IsDefault))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(nowUTC()))
	args = append(args, contractID, userID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE contracts SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...)
	if err != nil {
		return result.Err[core.Contract](core.NewStorageError("update_contract", err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return result.Err[core.Contract](core.NewNotFoundError("contract", contractID))
	}

	return s.mustFindContract(ctx, contractID, userID, "update_contract")
}

func (s *IncomeStore) CreateEntry(ctx context.Context, e core.IncomeEntry) result.Result[core.IncomeEntry] {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO income_entries (id, user_id, contract_id, date, hours_worked, total_amount_cents, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ContractID, e.Date, e.HoursWorked.String(),
		e.TotalAmount.Cents, nullString(e.Description),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return result.Err[core.IncomeEntry](core.NewStorageError("create_income_entry", err))
	}

	slog.InfoContext(ctx, "Income entry saved",
		"id", e.ID,
		"contract_id", e.ContractID,
		"total_amount_cents", e.TotalAmount.Cents)

	return result.Ok(e)
}

func (s *IncomeStore) MonthlyIncome(ctx context.Context, userID string, year, month int) result.Result[core.MonthlyIncomeSummary] {
	// Select by date value against the month's half-open window.
	from := core.NewDate(year, month, 1)
	to := core.NewDate(year, month+1, 1)

	rows, err := s.db.QueryContext(ctx, `
		SELECT ie.id, ie.user_id, ie.contract_id, ie.date, ie.hours_worked,
		       ie.total_amount_cents, ie.description, ie.created_at, ie.updated_at,
		       c.title, c.hourly_rate_cents
		FROM income_entries ie
		JOIN contracts c ON ie.contract_id = c.id
		WHERE ie.user_id = ? AND ie.date >= ? AND ie.date < ?
		ORDER BY ie.date ASC, ie.created_at ASC`, userID, from, to)
	if err != nil {
		return result.Err[core.MonthlyIncomeSummary](core.NewStorageError("monthly_income", err))
	}
	defer rows.Close()

	summary := core.MonthlyIncomeSummary{
		Year:       year,
		Month:      month,
		TotalHours: decimal.Zero,
		Entries:    []core.EntryWithContract{},
	}

	for rows.Next() {
		entry, err := scanEntryWithContract(rows)
		if err != nil {
			return result.Err[core.MonthlyIncomeSummary](core.NewStorageError("monthly_income", err))
		}
		summary.Entries = append(summary.Entries, entry)
		summary.TotalAmount = summary.TotalAmount.Add(entry.TotalAmount)
		summary.TotalHours = summary.TotalHours.Add(entry.HoursWorked)
	}
	if err := rows.Err(); err != nil {
		return result.Err[core.MonthlyIncomeSummary](core.NewStorageError("monthly_income", err))
	}

	return result.Ok(summary)
}

func (s *IncomeStore) DeleteEntry(ctx context.Context, entryID, userID string) result.Result[bool] {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM income_entries WHERE id = ? AND user_id = ?", entryID, userID)
	if err != nil {
		return result.Err[bool](core.NewStorageError("delete_income_entry", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return result.Err[bool](core.NewStorageError("delete_income_entry", err))
	}
	return result.Ok(affected > 0)
}

func (s *IncomeStore) mustFindContract(ctx context.Context, contractID, userID, op string) result.Result[core.Contract] {
	found := s.ContractByID(ctx, contractID, userID)
	if found.IsErr() {
		return result.Err[core.Contract](found.Err())
	}
	if found.Value() == nil {
		return result.Err[core.Contract](core.NewStorageError(op, errors.New("row missing after write")))
	}
	return result.Ok(*found.Value())
}

func scanContract(row rowScanner) (core.Contract, error) {
	var (
		c           core.Contract
		rateCents   int64
		description sql.NullString
		isActive    int64
		isDefault   int64
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &rateCents, &description,
		&isActive, &isDefault, &createdAt, &updatedAt); err != nil {
		return core.Contract{}, err
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return core.Contract{}, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return core.Contract{}, err
	}

	c.HourlyRate = core.Money{Cents: rateCents}
	c.Description = description.String
	c.IsActive = isActive != 0
	c.IsDefault = isDefault != 0
	c.CreatedAt = created
	c.UpdatedAt = updated
	return c, nil
}

func scanEntryWithContract(row rowScanner) (core.EntryWithContract, error) {
	var (
		entry         core.EntryWithContract
		hours         string
		totalCents    int64
		description   sql.NullString
		createdAt     string
		updatedAt     string
		contractCents int64
	)
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.ContractID, &entry.Date,
		&hours, &totalCents, &description, &createdAt, &updatedAt,
		&entry.ContractTitle, &contractCents); err != nil {
		return core.EntryWithContract{}, err
	}

	hoursWorked, err := decimal.NewFromString(hours)
	if err != nil {
		return core.EntryWithContract{}, fmt.Errorf("parse hours %q: %w", hours, err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return core.EntryWithContract{}, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return core.EntryWithContract{}, err
	}

	entry.HoursWorked = hoursWorked
	entry.TotalAmount = core.Money{Cents: totalCents}
	entry.Description = description.String
	entry.CreatedAt = created
	entry.UpdatedAt = updated
	entry.ContractHourlyRate = core.Money{Cents: contractCents}
	return entry, nil
}
