package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validTransactionInput() CreateTransactionInput {
	return CreateTransactionInput{
		UserID:      "user-1",
		Amount:      Money{Cents: 1250},
		Category:    CategoryGroceries,
		Description: "weekly shop",
		Date:        NewDate(2026, 8, 30),
	}
}

func TestCreateTransactionInputValidate(t *testing.T) {
	if err := validTransactionInput().Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateTransactionInput)
		field  string
	}{
		{"empty user", func(in *CreateTransactionInput) { in.UserID = " " }, "userId"},
		{"zero amount", func(in *CreateTransactionInput) { in.Amount = Money{} }, "amount"},
		{"negative amount", func(in *CreateTransactionInput) { in.Amount = Money{Cents: -1} }, "amount"},
		{"unknown category", func(in *CreateTransactionInput) { in.Category = "gadgets" }, "category"},
		{"missing date", func(in *CreateTransactionInput) { in.Date = Date{} }, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validTransactionInput()
			tc.mutate(&in)
			err := in.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !IsKind(err, KindValidation) {
				t.Fatalf("expected validation kind, got %s", KindOf(err))
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("message must name field %q: %s", tc.field, err)
			}
		})
	}
}

func TestCreateTransactionInputCollectsAllViolations(t *testing.T) {
	err := CreateTransactionInput{}.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, field := range []string{"userId", "amount", "category", "date"} {
		if !strings.Contains(msg, field) {
			t.Fatalf("message must mention %q: %s", field, msg)
		}
	}
}

func TestCreateTaskInputValidate(t *testing.T) {
	in := CreateTaskInput{UserID: "user-1", Title: "water plants"}
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	// Due date is optional.
	in.DueDate = Date{}
	if err := in.Validate(); err != nil {
		t.Fatalf("missing due date must be accepted: %v", err)
	}

	if err := (CreateTaskInput{UserID: "user-1", Title: "  "}).Validate(); err == nil {
		t.Fatalf("blank title must be rejected")
	}
}

func TestTaskUpdate(t *testing.T) {
	if !(TaskUpdate{}).Empty() {
		t.Fatalf("zero update must be empty")
	}

	title := "new title"
	upd := TaskUpdate{Title: &title}
	if upd.Empty() {
		t.Fatalf("update with title is not empty")
	}
	if err := upd.Validate(); err != nil {
		t.Fatalf("valid update rejected: %v", err)
	}

	blank := "   "
	if err := (TaskUpdate{Title: &blank}).Validate(); err == nil {
		t.Fatalf("blank title update must be rejected")
	}
}

func TestCreateContractInputValidate(t *testing.T) {
	in := CreateContractInput{Title: "Consulting", HourlyRate: Money{Cents: 7500}}
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	if err := (CreateContractInput{Title: "X", HourlyRate: Money{Cents: 0}}).Validate(); err == nil {
		t.Fatalf("zero rate must be rejected")
	}
	if err := (CreateContractInput{Title: "", HourlyRate: Money{Cents: 100}}).Validate(); err == nil {
		t.Fatalf("empty title must be rejected")
	}
}

func TestCreateIncomeEntryInputValidate(t *testing.T) {
	in := CreateIncomeEntryInput{
		ContractID:  "c-1",
		Date:        NewDate(2026, 8, 15),
		HoursWorked: decimal.RequireFromString("7.5"),
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	in.HoursWorked = decimal.Zero
	if err := in.Validate(); err == nil {
		t.Fatalf("zero hours must be rejected")
	}

	in = CreateIncomeEntryInput{ContractID: "", Date: Date{}, HoursWorked: decimal.NewFromInt(-1)}
	err := in.Validate()
	if err == nil || !IsKind(err, KindValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
}
