// Package memory is an in-process stand-in for the Sheets adapter, used
// in tests and local runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"homedash/internal/core"
	ports "homedash/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	reports map[string]core.MonthlyIncomeSummary
}

var _ ports.IncomeReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{reports: map[string]core.MonthlyIncomeSummary{}}
}

// WriteMonthlyIncome keeps the latest summary per month, matching the
// replace-not-append contract of the real adapter.
func (s *Store) WriteMonthlyIncome(_ context.Context, summary core.MonthlyIncomeSummary) error {
	if summary.Month < 1 || summary.Month > 12 {
		return fmt.Errorf("invalid month: %d", summary.Month)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[monthKey(summary.Year, summary.Month)] = summary
	return nil
}

// Report returns the stored summary for a month, if any.
func (s *Store) Report(year, month int) (core.MonthlyIncomeSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.reports[monthKey(year, month)]
	return summary, ok
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
