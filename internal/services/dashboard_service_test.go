package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homedash/internal/core"
)

func newDashboard(txRepo *fakeTransactionRepo, taskRepo *fakeTaskRepo) *DashboardService {
	return NewDashboardService(
		NewTransactionService(txRepo, nil),
		NewTaskService(taskRepo),
	)
}

func TestGetDashboardOverview(t *testing.T) {
	txRepo := &fakeTransactionRepo{}
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		txRepo.transactions = append(txRepo.transactions, core.Transaction{
			ID:        fmt.Sprintf("tx-%d", i),
			UserID:    "user-1",
			Amount:    core.Money{Cents: 1000},
			Category:  core.CategoryGroceries,
			Date:      core.NewDate(2026, 8, 1+i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	taskRepo := &fakeTaskRepo{}
	for i := 0; i < 7; i++ {
		taskRepo.tasks = append(taskRepo.tasks, core.Task{
			ID:     fmt.Sprintf("task-%d", i),
			UserID: "user-1",
		})
	}

	svc := newDashboard(txRepo, taskRepo)
	res := svc.GetDashboardOverview(context.Background(), "user-1")
	require.True(t, res.IsOk(), "overview failed: %v", res.Err())

	overview := res.Value()

	// Lists are capped for display; summaries cover everything.
	assert.Len(t, overview.RecentTransactions, 5)
	assert.Len(t, overview.PendingTasks, 5)
	assert.Equal(t, 7, overview.FinancialSummary.TransactionCount)
	assert.Equal(t, int64(7000), overview.FinancialSummary.TotalSpent.Cents)
	assert.Equal(t, 7, overview.TaskSummary.Total)
	assert.Equal(t, 7, overview.TaskSummary.Pending)

	// Newest transaction first.
	assert.Equal(t, "tx-6", overview.RecentTransactions[0].ID)

	// Average over the full list: 70.00 / 7.
	assert.True(t, overview.FinancialSummary.AverageTransactionAmount.Equal(core.Money{Cents: 1000}.Decimal()))
}

func TestGetDashboardOverviewEmpty(t *testing.T) {
	svc := newDashboard(&fakeTransactionRepo{}, &fakeTaskRepo{})

	res := svc.GetDashboardOverview(context.Background(), "user-1")
	require.True(t, res.IsOk(), "overview failed: %v", res.Err())

	overview := res.Value()
	assert.Empty(t, overview.RecentTransactions)
	assert.Empty(t, overview.PendingTasks)
	assert.Zero(t, overview.FinancialSummary.TotalSpent.Cents)
	assert.True(t, overview.FinancialSummary.AverageTransactionAmount.IsZero(),
		"average over no transactions must be zero, not a division failure")
}

func TestGetDashboardOverviewAllOrNothing(t *testing.T) {
	txRepo := &fakeTransactionRepo{transactions: []core.Transaction{
		{ID: "tx-1", UserID: "user-1", Amount: core.Money{Cents: 500}},
	}}
	taskRepo := &fakeTaskRepo{
		tasks:       []core.Task{{ID: "t-1", UserID: "user-1"}},
		failSummary: core.NewStorageError("task_summary", errors.New("disk full")),
	}

	svc := newDashboard(txRepo, taskRepo)
	res := svc.GetDashboardOverview(context.Background(), "user-1")
	require.True(t, res.IsErr(), "one failing step must fail the whole overview")
	assert.True(t, core.IsKind(res.Err(), core.KindStorage))
	assert.Contains(t, res.Err().Error(), "task summary", "error must name the failing step")
}

func TestGetDashboardOverviewTransactionFailure(t *testing.T) {
	txRepo := &fakeTransactionRepo{failWith: core.NewStorageError("list_transactions", errors.New("locked"))}
	taskRepo := &fakeTaskRepo{}

	svc := newDashboard(txRepo, taskRepo)
	res := svc.GetDashboardOverview(context.Background(), "user-1")
	require.True(t, res.IsErr())
	assert.Contains(t, res.Err().Error(), "recent transactions")
}
