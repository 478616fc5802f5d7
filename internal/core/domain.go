package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed spending taxonomy for transactions.
type Category string

const (
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryTransport,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the fixed taxonomy.
func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryTransport, CategoryUtilities,
		CategoryEntertainment, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyTitle       = errors.New("empty title")
	ErrInvalidRate      = errors.New("invalid hourly rate")
	ErrInvalidHours     = errors.New("invalid hours worked")
	ErrMissingContract  = errors.New("missing contract id")
	ErrMissingUser      = errors.New("missing user id")
)

// Transaction is a single spending record. Immutable once created.
type Transaction struct {
	ID          string
	UserID      string
	Amount      Money
	Category    Category
	Description string
	Date        Date
	CreatedAt   time.Time
}

// Task is a to-do item. Title and due date change via update; the
// completed flag only changes through the completion toggle.
type Task struct {
	ID        string
	UserID    string
	Title     string
	Completed bool
	DueDate   Date // zero when the task has no due date
	CreatedAt time.Time
}

// Overdue reports whether the task is pending with a due date strictly
// before today. A task due today is not overdue.
func (t Task) Overdue(today Date) bool {
	return !t.Completed && !t.DueDate.IsEmpty() && t.DueDate.Before(today)
}

// Contract is an income source with an hourly rate. At most one active
// contract per user carries IsDefault.
type Contract struct {
	ID          string
	UserID      string
	Title       string
	HourlyRate  Money
	Description string
	IsActive    bool
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IncomeEntry records hours worked against a contract. TotalAmount is
// frozen at creation time from the contract's rate at that moment; later
// rate changes never touch it.
type IncomeEntry struct {
	ID          string
	UserID      string
	ContractID  string
	Date        Date
	HoursWorked decimal.Decimal
	TotalAmount Money
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
