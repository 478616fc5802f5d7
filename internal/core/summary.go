package core

import "github.com/shopspring/decimal"

// CategorySpending is one aggregated row of spending analysis: totals for
// a single category over the queried window.
type CategorySpending struct {
	Category         Category
	TotalAmount      Money
	TransactionCount int
	AverageAmount    decimal.Decimal
}

// FinancialSummary covers a user's complete transaction set, never a
// displayed slice of it.
type FinancialSummary struct {
	TotalSpent               Money
	TransactionCount         int
	AverageTransactionAmount decimal.Decimal
}

// TaskSummary partitions a user's tasks. Total always equals
// Completed + Pending; Overdue counts a subset of Pending.
type TaskSummary struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// DashboardOverview is the cross-feature read model, recomputed on every
// request. The embedded lists are capped for display; the summaries are
// not.
type DashboardOverview struct {
	RecentTransactions []Transaction
	PendingTasks       []Task
	FinancialSummary   FinancialSummary
	TaskSummary        TaskSummary
}

// EntryWithContract enriches an income entry with the owning contract's
// current title and rate. TotalAmount still reflects the rate at entry
// creation.
type EntryWithContract struct {
	IncomeEntry
	ContractTitle      string
	ContractHourlyRate Money
}

// MonthlyIncomeSummary covers one calendar month of income for one user.
type MonthlyIncomeSummary struct {
	Year        int
	Month       int
	TotalAmount Money
	TotalHours  decimal.Decimal
	Entries     []EntryWithContract
}
