package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"homedash/internal/core"
	"homedash/internal/result"
	"homedash/internal/services"
)

// TransactionStore is the SQLite-backed transaction repository.
type TransactionStore struct {
	db *sql.DB
}

var _ services.TransactionRepository = (*TransactionStore)(nil)

func (s *TransactionStore) FindByID(ctx context.Context, id string) result.Result[*core.Transaction] {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount_cents, category, description, date, created_at
		FROM transactions
		WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return result.Ok[*core.Transaction](nil)
	}
	if err != nil {
		return result.Err[*core.Transaction](core.NewStorageError("find_transaction", err))
	}
	return result.Ok(&tx)
}

func (s *TransactionStore) Create(ctx context.Context, tx core.Transaction) result.Result[core.Transaction] {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount_cents, category, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Amount.Cents, string(tx.Category),
		nullString(tx.Description), tx.Date, formatTime(tx.CreatedAt))
	if err != nil {
		return result.Err[core.Transaction](core.NewStorageError("create_transaction", err))
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"user_id", tx.UserID,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return result.Ok(tx)
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID string) result.Result[[]core.Transaction] {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, amount_cents, category, description, date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return result.Err[[]core.Transaction](core.NewStorageError("list_transactions", err))
	}
	defer rows.Close()

	transactions := []core.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return result.Err[[]core.Transaction](core.NewStorageError("list_transactions", err))
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]core.Transaction](core.NewStorageError("list_transactions", err))
	}

	return result.Ok(transactions)
}

func (s *TransactionStore) SpendingByCategory(ctx context.Context, userID string, since core.Date) result.Result[[]core.CategorySpending] {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents), COUNT(*)
		FROM transactions
		WHERE user_id = ? AND date >= ?
		GROUP BY category
		ORDER BY SUM(amount_cents) DESC`, userID, since)
	if err != nil {
		return result.Err[[]core.CategorySpending](core.NewStorageError("spending_by_category", err))
	}
	defer rows.Close()

	analysis := []core.CategorySpending{}
	for rows.Next() {
		var (
			category   string
			totalCents int64
			count      int
		)
		if err := rows.Scan(&category, &totalCents, &count); err != nil {
			return result.Err[[]core.CategorySpending](core.NewStorageError("spending_by_category", err))
		}
		total := core.Money{Cents: totalCents}
		analysis = append(analysis, core.CategorySpending{
			Category:         core.Category(category),
			TotalAmount:      total,
			TransactionCount: count,
			AverageAmount:    total.Div(int64(count)),
		})
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]core.CategorySpending](core.NewStorageError("spending_by_category", err))
	}

	return result.Ok(analysis)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx          core.Transaction
		amountCents int64
		category    string
		description sql.NullString
		createdAt   string
	)
	if err := row.Scan(&tx.ID, &tx.UserID, &amountCents, &category, &description, &tx.Date, &createdAt); err != nil {
		return core.Transaction{}, err
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return core.Transaction{}, err
	}

	tx.Amount = core.Money{Cents: amountCents}
	tx.Category = core.Category(category)
	tx.Description = description.String
	tx.CreatedAt = created
	return tx, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
