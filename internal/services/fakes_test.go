package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"homedash/internal/core"
	"homedash/internal/result"
)

// In-memory repository fakes. Each carries a forced error so tests can
// fail any call, and counters so tests can assert storage was never
// touched.

type fakeTransactionRepo struct {
	transactions []core.Transaction
	createCalls  int
	failWith     error
}

var _ TransactionRepository = (*fakeTransactionRepo)(nil)

func (f *fakeTransactionRepo) FindByID(_ context.Context, id string) result.Result[*core.Transaction] {
	if f.failWith != nil {
		return result.Err[*core.Transaction](f.failWith)
	}
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			tx := f.transactions[i]
			return result.Ok(&tx)
		}
	}
	return result.Ok[*core.Transaction](nil)
}

func (f *fakeTransactionRepo) Create(_ context.Context, tx core.Transaction) result.Result[core.Transaction] {
	f.createCalls++
	if f.failWith != nil {
		return result.Err[core.Transaction](f.failWith)
	}
	f.transactions = append(f.transactions, tx)
	return result.Ok(tx)
}

func (f *fakeTransactionRepo) ListByUser(_ context.Context, userID string) result.Result[[]core.Transaction] {
	if f.failWith != nil {
		return result.Err[[]core.Transaction](f.failWith)
	}
	out := []core.Transaction{}
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	// Newest first, matching the SQL ordering.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return result.Ok(out)
}

func (f *fakeTransactionRepo) SpendingByCategory(_ context.Context, userID string, since core.Date) result.Result[[]core.CategorySpending] {
	if f.failWith != nil {
		return result.Err[[]core.CategorySpending](f.failWith)
	}
	totals := map[core.Category]*core.CategorySpending{}
	order := []core.Category{}
	for _, tx := range f.transactions {
		if tx.UserID != userID || tx.Date.Before(since) {
			continue
		}
		row, ok := totals[tx.Category]
		if !ok {
			row = &core.CategorySpending{Category: tx.Category}
			totals[tx.Category] = row
			order = append(order, tx.Category)
		}
		row.TotalAmount = row.TotalAmount.Add(tx.Amount)
		row.TransactionCount++
	}
	out := make([]core.CategorySpending, 0, len(order))
	for _, c := range order {
		row := *totals[c]
		row.AverageAmount = row.TotalAmount.Div(int64(row.TransactionCount))
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount.Cents > out[j].TotalAmount.Cents
	})
	return result.Ok(out)
}

type fakeTaskRepo struct {
	tasks       []core.Task
	createCalls int
	failWith    error
	failSummary error
}

var _ TaskRepository = (*fakeTaskRepo)(nil)

func (f *fakeTaskRepo) FindByID(_ context.Context, id string) result.Result[*core.Task] {
	if f.failWith != nil {
		return result.Err[*core.Task](f.failWith)
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			task := f.tasks[i]
			return result.Ok(&task)
		}
	}
	return result.Ok[*core.Task](nil)
}

func (f *fakeTaskRepo) Create(_ context.Context, task core.Task) result.Result[core.Task] {
	f.createCalls++
	if f.failWith != nil {
		return result.Err[core.Task](f.failWith)
	}
	f.tasks = append(f.tasks, task)
	return result.Ok(task)
}

func (f *fakeTaskRepo) Update(_ context.Context, id string, upd core.TaskUpdate) result.Result[core.Task] {
	if f.failWith != nil {
		return result.Err[core.Task](f.failWith)
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if upd.Title != nil {
			f.tasks[i].Title = *upd.Title
		}
		if upd.DueDate != nil {
			f.tasks[i].DueDate = *upd.DueDate
		}
		return result.Ok(f.tasks[i])
	}
	return result.Err[core.Task](core.NewNotFoundError("task", id))
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) result.Result[bool] {
	if f.failWith != nil {
		return result.Err[bool](f.failWith)
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return result.Ok(true)
		}
	}
	return result.Ok(false)
}

func (f *fakeTaskRepo) SetCompleted(_ context.Context, id string, completed bool) result.Result[core.Task] {
	if f.failWith != nil {
		return result.Err[core.Task](f.failWith)
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
			return result.Ok(f.tasks[i])
		}
	}
	return result.Err[core.Task](core.NewNotFoundError("task", id))
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID string) result.Result[[]core.Task] {
	return f.list(userID, func(core.Task) bool { return true })
}

func (f *fakeTaskRepo) ListPending(_ context.Context, userID string) result.Result[[]core.Task] {
	return f.list(userID, func(t core.Task) bool { return !t.Completed })
}

func (f *fakeTaskRepo) ListCompleted(_ context.Context, userID string) result.Result[[]core.Task] {
	return f.list(userID, func(t core.Task) bool { return t.Completed })
}

func (f *fakeTaskRepo) ListOverdue(_ context.Context, userID string, today core.Date) result.Result[[]core.Task] {
	return f.list(userID, func(t core.Task) bool { return t.Overdue(today) })
}

func (f *fakeTaskRepo) list(userID string, keep func(core.Task) bool) result.Result[[]core.Task] {
	if f.failWith != nil {
		return result.Err[[]core.Task](f.failWith)
	}
	out := []core.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID && keep(task) {
			out = append(out, task)
		}
	}
	return result.Ok(out)
}

func (f *fakeTaskRepo) Summary(_ context.Context, userID string, today core.Date) result.Result[core.TaskSummary] {
	if f.failSummary != nil {
		return result.Err[core.TaskSummary](f.failSummary)
	}
	if f.failWith != nil {
		return result.Err[core.TaskSummary](f.failWith)
	}
	var summary core.TaskSummary
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		summary.Total++
		if task.Completed {
			summary.Completed++
		} else {
			summary.Pending++
		}
		if task.Overdue(today) {
			summary.Overdue++
		}
	}
	return result.Ok(summary)
}

type fakeIncomeRepo struct {
	contracts   []core.Contract
	entries     []core.IncomeEntry
	createCalls int
	failWith    error
}

var _ IncomeRepository = (*fakeIncomeRepo)(nil)

func (f *fakeIncomeRepo) CreateContract(_ context.Context, c core.Contract) result.Result[core.Contract] {
	if f.failWith != nil {
		return result.Err[core.Contract](f.failWith)
	}
	if c.IsDefault {
		f.unsetDefaults(c.UserID)
	}
	f.contracts = append(f.contracts, c)
	return result.Ok(c)
}

func (f *fakeIncomeRepo) ListContracts(_ context.Context, userID string) result.Result[[]core.Contract] {
	if f.failWith != nil {
		return result.Err[[]core.Contract](f.failWith)
	}
	out := []core.Contract{}
	for _, c := range f.contracts {
		if c.UserID == userID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return result.Ok(out)
}

func (f *fakeIncomeRepo) ContractByID(_ context.Context, contractID, userID string) result.Result[*core.Contract] {
	if f.failWith != nil {
		return result.Err[*core.Contract](f.failWith)
	}
	for i := range f.contracts {
		if f.contracts[i].ID == contractID && f.contracts[i].UserID == userID {
			c := f.contracts[i]
			return result.Ok(&c)
		}
	}
	return result.Ok[*core.Contract](nil)
}

func (f *fakeIncomeRepo) DefaultContract(_ context.Context, userID string) result.Result[*core.Contract] {
	if f.failWith != nil {
		return result.Err[*core.Contract](f.failWith)
	}
	for i := range f.contracts {
		if f.contracts[i].UserID == userID && f.contracts[i].IsDefault && f.contracts[i].IsActive {
			c := f.contracts[i]
			return result.Ok(&c)
		}
	}
	return result.Ok[*core.Contract](nil)
}

func (f *fakeIncomeRepo) SetDefaultContract(_ context.Context, contractID, userID string) result.Result[bool] {
	if f.failWith != nil {
		return result.Err[bool](f.failWith)
	}
	found := false
	for i := range f.contracts {
		if f.contracts[i].ID == contractID && f.contracts[i].UserID == userID {
			found = true
		}
	}
	if !found {
		return result.Ok(false)
	}
	f.unsetDefaults(userID)
	for i := range f.contracts {
		if f.contracts[i].ID == contractID {
			f.contracts[i].IsDefault = true
		}
	}
	return result.Ok(true)
}

func (f *fakeIncomeRepo) UpdateContract(_ context.Context, contractID, userID string, upd core.ContractUpdate) result.Result[core.Contract] {
	if f.failWith != nil {
		return result.Err[core.Contract](f.failWith)
	}
	for i := range f.contracts {
		if f.contracts[i].ID != contractID || f.contracts[i].UserID != userID {
			continue
		}
		if upd.Title != nil {
			f.contracts[i].Title = *upd.Title
		}
		if upd.HourlyRate != nil {
			f.contracts[i].HourlyRate = *upd.HourlyRate
		}
		if upd.Description != nil {
			f.contracts[i].Description = *upd.Description
		}
		if upd.IsActive != nil {
			f.contracts[i].IsActive = *upd.IsActive
		}
		if upd.IsDefault != nil {
			f.contracts[i].IsDefault = *upd.IsDefault
		}
		return result.Ok(f.contracts[i])
	}
	return result.Err[core.Contract](core.NewNotFoundError("contract", contractID))
}

func (f *fakeIncomeRepo) CreateEntry(_ context.Context, e core.IncomeEntry) result.Result[core.IncomeEntry] {
	f.createCalls++
	if f.failWith != nil {
		return result.Err[core.IncomeEntry](f.failWith)
	}
	f.entries = append(f.entries, e)
	return result.Ok(e)
}

func (f *fakeIncomeRepo) MonthlyIncome(_ context.Context, userID string, year, month int) result.Result[core.MonthlyIncomeSummary] {
	if f.failWith != nil {
		return result.Err[core.MonthlyIncomeSummary](f.failWith)
	}
	summary := core.MonthlyIncomeSummary{
		Year:       year,
		Month:      month,
		TotalHours: decimal.Zero,
		Entries:    []core.EntryWithContract{},
	}
	for _, e := range f.entries {
		if e.UserID != userID || !e.Date.InMonth(year, month) {
			continue
		}
		enriched := core.EntryWithContract{IncomeEntry: e}
		for _, c := range f.contracts {
			if c.ID == e.ContractID {
				enriched.ContractTitle = c.Title
				enriched.ContractHourlyRate = c.HourlyRate
			}
		}
		summary.Entries = append(summary.Entries, enriched)
		summary.TotalAmount = summary.TotalAmount.Add(e.TotalAmount)
		summary.TotalHours = summary.TotalHours.Add(e.HoursWorked)
	}
	return result.Ok(summary)
}

func (f *fakeIncomeRepo) DeleteEntry(_ context.Context, entryID, userID string) result.Result[bool] {
	if f.failWith != nil {
		return result.Err[bool](f.failWith)
	}
	for i := range f.entries {
		if f.entries[i].ID == entryID && f.entries[i].UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return result.Ok(true)
		}
	}
	return result.Ok(false)
}

func (f *fakeIncomeRepo) unsetDefaults(userID string) {
	for i := range f.contracts {
		if f.contracts[i].UserID == userID {
			f.contracts[i].IsDefault = false
		}
	}
}

type fakePublisher struct {
	transactions []core.Transaction
	entries      []core.IncomeEntry
	failWith     error
}

var _ EventPublisher = (*fakePublisher)(nil)

func (f *fakePublisher) PublishTransactionCreated(_ context.Context, tx core.Transaction) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakePublisher) PublishIncomeEntryCreated(_ context.Context, e core.IncomeEntry) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, e)
	return nil
}
