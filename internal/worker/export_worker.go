// Package worker moves income data from the database to the monthly
// spreadsheet: event-driven for fresh entries, on a timer as backstop
// for missed messages.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"homedash/internal/core"
	"homedash/internal/events"
	"homedash/internal/services"
	"homedash/internal/sheets"
)

type ExportWorker struct {
	income services.IncomeRepository
	writer sheets.IncomeReportWriter
	userID string
}

func NewExportWorker(income services.IncomeRepository, writer sheets.IncomeReportWriter, userID string) *ExportWorker {
	return &ExportWorker{
		income: income,
		writer: writer,
		userID: userID,
	}
}

// Run consumes events and re-exports the current month every interval
// until ctx is cancelled. Either loop failing stops both.
func (w *ExportWorker) Run(ctx context.Context, client *events.Client, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.Consume(ctx, func(event *events.Event) error {
			return w.HandleEvent(ctx, event)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.ExportCurrentMonth(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic export failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleEvent routes one event. Unknown types are acked and dropped so
// a newer publisher cannot wedge the queue.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeIncomeEntryCreated:
		var payload events.IncomeEntryCreatedPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal income entry payload: %w", err)
		}
		return w.ExportMonth(ctx, payload.Year, payload.Month)
	case events.TypeTransactionCreated:
		// Transactions have no spreadsheet today; ack and move on.
		slog.InfoContext(ctx, "Skipping transaction event", "type", event.Type)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event type", "type", event.Type)
		return nil
	}
}

// ExportMonth reads the month's income from the database and writes the
// report. The database is the source of truth; the event only names the
// month to refresh.
func (w *ExportWorker) ExportMonth(ctx context.Context, year, month int) error {
	summary, err := w.income.MonthlyIncome(ctx, w.userID, year, month).Unpack()
	if err != nil {
		return fmt.Errorf("load monthly income: %w", err)
	}

	if err := w.writer.WriteMonthlyIncome(ctx, summary); err != nil {
		return fmt.Errorf("write monthly income report: %w", err)
	}

	slog.InfoContext(ctx, "Exported income report",
		"year", year,
		"month", month,
		"entries", len(summary.Entries),
		"total_cents", summary.TotalAmount.Cents)

	return nil
}

// ExportCurrentMonth refreshes the month the clock currently sits in.
func (w *ExportWorker) ExportCurrentMonth(ctx context.Context) error {
	today := core.Today()
	return w.ExportMonth(ctx, today.Year(), today.Month())
}
