package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The input types below form the validation gate: the only place where
// malformed caller data is rejected. A service receiving a validated
// input assumes structural correctness and checks business rules only.
//
// Each Validate collects every violation into a single validation error
// whose Field is the first offender and whose message joins all reasons
// with commas.

type violation struct {
	field  string
	reason string
}

func validationError(violations []violation) error {
	if len(violations) == 0 {
		return nil
	}
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.field + ": " + v.reason
	}
	return NewValidationError(violations[0].field, strings.Join(parts, ", "))
}

// CreateTransactionInput carries a new transaction before id and
// timestamp assignment.
type CreateTransactionInput struct {
	UserID      string
	Amount      Money
	Category    Category
	Description string
	Date        Date
}

func (in CreateTransactionInput) Validate() error {
	var vs []violation
	if strings.TrimSpace(in.UserID) == "" {
		vs = append(vs, violation{"userId", "must not be empty"})
	}
	if !in.Amount.Positive() {
		vs = append(vs, violation{"amount", "must be greater than zero"})
	}
	if !in.Category.Valid() {
		vs = append(vs, violation{"category", "must be one of the known categories"})
	}
	if in.Date.IsEmpty() {
		vs = append(vs, violation{"date", "must be a valid calendar date"})
	}
	return validationError(vs)
}

// CreateTaskInput carries a new task. Completed is not accepted here:
// tasks always start pending.
type CreateTaskInput struct {
	UserID  string
	Title   string
	DueDate Date // optional
}

func (in CreateTaskInput) Validate() error {
	var vs []violation
	if strings.TrimSpace(in.UserID) == "" {
		vs = append(vs, violation{"userId", "must not be empty"})
	}
	if strings.TrimSpace(in.Title) == "" {
		vs = append(vs, violation{"title", "must not be empty"})
	}
	return validationError(vs)
}

// TaskUpdate is a tagged partial update: only non-nil fields are written.
// Completed is deliberately absent; completion changes go through the
// toggle path only.
type TaskUpdate struct {
	Title   *string
	DueDate *Date
}

func (u TaskUpdate) Validate() error {
	var vs []violation
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		vs = append(vs, violation{"title", "must not be empty"})
	}
	return validationError(vs)
}

// Empty reports whether the update carries no fields at all.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.DueDate == nil
}

// CreateContractInput carries a new contract. IsDefault true demotes any
// previous default of the same user.
type CreateContractInput struct {
	Title       string
	HourlyRate  Money
	Description string
	IsDefault   bool
}

func (in CreateContractInput) Validate() error {
	var vs []violation
	if strings.TrimSpace(in.Title) == "" {
		vs = append(vs, violation{"title", "must not be empty"})
	}
	if !in.HourlyRate.Positive() {
		vs = append(vs, violation{"hourlyRate", "must be greater than zero"})
	}
	return validationError(vs)
}

// ContractUpdate is a tagged partial update for contracts.
type ContractUpdate struct {
	Title       *string
	HourlyRate  *Money
	Description *string
	IsActive    *bool
	IsDefault   *bool
}

func (u ContractUpdate) Validate() error {
	var vs []violation
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		vs = append(vs, violation{"title", "must not be empty"})
	}
	if u.HourlyRate != nil && !u.HourlyRate.Positive() {
		vs = append(vs, violation{"hourlyRate", "must be greater than zero"})
	}
	return validationError(vs)
}

// Empty reports whether the update carries no fields at all.
func (u ContractUpdate) Empty() bool {
	return u.Title == nil && u.HourlyRate == nil && u.Description == nil &&
		u.IsActive == nil && u.IsDefault == nil
}

// CreateIncomeEntryInput carries a new income entry. TotalAmount is never
// accepted from the caller; it is derived from the contract rate.
type CreateIncomeEntryInput struct {
	ContractID  string
	Date        Date
	HoursWorked decimal.Decimal
	Description string
}

func (in CreateIncomeEntryInput) Validate() error {
	var vs []violation
	if strings.TrimSpace(in.ContractID) == "" {
		vs = append(vs, violation{"contractId", "must not be empty"})
	}
	if in.Date.IsEmpty() {
		vs = append(vs, violation{"date", "must be a valid calendar date"})
	}
	if !in.HoursWorked.IsPositive() {
		vs = append(vs, violation{"hoursWorked", "must be greater than zero"})
	}
	return validationError(vs)
}
