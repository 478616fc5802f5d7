package services

import (
	"context"

	"homedash/internal/core"
	"homedash/internal/result"
)

// overviewListCap limits the transaction and task lists embedded in the
// overview. It never applies to the summary statistics.
const overviewListCap = 5

// Readers for the two services the dashboard composes. Interfaces so
// tests can force individual steps to fail.
type (
	TransactionReader interface {
		GetTransactionsByUser(ctx context.Context, userID string) result.Result[[]core.Transaction]
	}

	TaskReader interface {
		GetPendingTasks(ctx context.Context, userID string) result.Result[[]core.Task]
		GetTaskSummary(ctx context.Context, userID string) result.Result[core.TaskSummary]
	}
)

// DashboardService composes the transaction and task services into one
// cross-feature read model.
type DashboardService struct {
	transactions TransactionReader
	tasks        TaskReader
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(transactions TransactionReader, tasks TaskReader) *DashboardService {
	return &DashboardService{transactions: transactions, tasks: tasks}
}

// GetDashboardOverview is all-or-nothing: if any underlying call fails,
// the whole overview fails with the step named in the wrapped error; a
// partially filled overview is never returned. The financial summary is
// computed over the full transaction list, not the displayed slice.
func (s *DashboardService) GetDashboardOverview(ctx context.Context, userID string) result.Result[core.DashboardOverview] {
	transactions := s.transactions.GetTransactionsByUser(ctx, userID)
	if transactions.IsErr() {
		return result.Err[core.DashboardOverview](
			core.WrapStep("dashboard_overview", "load recent transactions", transactions.Err()))
	}

	pending := s.tasks.GetPendingTasks(ctx, userID)
	if pending.IsErr() {
		return result.Err[core.DashboardOverview](
			core.WrapStep("dashboard_overview", "load pending tasks", pending.Err()))
	}

	taskSummary := s.tasks.GetTaskSummary(ctx, userID)
	if taskSummary.IsErr() {
		return result.Err[core.DashboardOverview](
			core.WrapStep("dashboard_overview", "load task summary", taskSummary.Err()))
	}

	all := transactions.Value()
	overview := core.DashboardOverview{
		RecentTransactions: capList(all),
		PendingTasks:       capList(pending.Value()),
		FinancialSummary:   financialSummary(all),
		TaskSummary:        taskSummary.Value(),
	}

	return result.Ok(overview)
}

// financialSummary derives the spending statistics from the complete
// transaction list. The average is zero for an empty list; it never
// divides by zero.
func financialSummary(transactions []core.Transaction) core.FinancialSummary {
	var total core.Money
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}

	return core.FinancialSummary{
		TotalSpent:               total,
		TransactionCount:         len(transactions),
		AverageTransactionAmount: total.Div(int64(len(transactions))),
	}
}

func capList[T any](list []T) []T {
	if len(list) > overviewListCap {
		return list[:overviewListCap]
	}
	return list
}
