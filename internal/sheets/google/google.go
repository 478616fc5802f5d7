// Package google is the Google Sheets adapter for monthly income
// reports. Authentication uses a service account; the spreadsheet and
// sheet names come from the environment.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"homedash/internal/core"
	ports "homedash/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// Base name without year (e.g. "Income"); code prefixes the year.
	incomeBase string
}

var _ ports.IncomeReportWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_INCOME_SHEET_NAME (default "Income").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	incomeBase := strings.TrimSpace(os.Getenv("GOOGLE_INCOME_SHEET_NAME"))
	if incomeBase == "" {
		incomeBase = "Income"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		incomeBase:    incomeBase,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// WriteMonthlyIncome replaces the month's block on the year's income
// sheet. Each entry becomes one row; a totals row closes the block.
func (c *Client) WriteMonthlyIncome(ctx context.Context, summary core.MonthlyIncomeSummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if summary.Month < 1 || summary.Month > 12 {
		return fmt.Errorf("invalid month: %d", summary.Month)
	}

	sheetName := yearPrefixedName(c.incomeBase, summary.Year)

	// Clear the month's previous block so re-exports do not duplicate.
	monthTag := fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)
	if err := c.clearMonthRows(ctx, sheetName, monthTag); err != nil {
		return err
	}

	values := make([][]any, 0, len(summary.Entries)+1)
	for _, entry := range summary.Entries {
		values = append(values, []any{
			monthTag,
			entry.Date.String(),
			entry.ContractTitle,
			entry.HoursWorked.String(),
			centsToUnits(entry.TotalAmount.Cents),
			entry.Description,
		})
	}
	values = append(values, []any{
		monthTag,
		"TOTAL",
		"",
		summary.TotalHours.String(),
		centsToUnits(summary.TotalAmount.Cents),
		"",
	})

	rng := fmt.Sprintf("%s!A:F", sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append income rows to %s: %w", sheetName, err)
	}

	slog.InfoContext(ctx, "Exported monthly income",
		"sheet", sheetName,
		"month", monthTag,
		"entries", len(summary.Entries))

	return nil
}

// clearMonthRows blanks every row whose first column carries the month
// tag. Blanked rows are left in place; the append below adds fresh ones.
func (c *Client) clearMonthRows(ctx context.Context, sheetName, monthTag string) error {
	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}

	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) != monthTag {
			continue
		}
		rowNum := i + 1
		clearRange := fmt.Sprintf("%s!A%d:F%d", sheetName, rowNum, rowNum)
		_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("clear %s: %w", clearRange, err)
		}
	}
	return nil
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100.0
}

// yearPrefixedName returns "<year> <base>" unless base already starts
// with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
