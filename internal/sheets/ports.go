package sheets

import (
	"context"

	"homedash/internal/core"
)

// Ports for outbound adapters.
type (
	// IncomeReportWriter publishes a month of income to an external
	// spreadsheet. Writes are idempotent per month: the month's block is
	// replaced, not appended to.
	IncomeReportWriter interface {
		WriteMonthlyIncome(ctx context.Context, summary core.MonthlyIncomeSummary) error
	}
)
