package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"homedash/internal/config"
	"homedash/internal/core"
	"homedash/internal/log"
	gsheet "homedash/internal/sheets/google"
	"homedash/internal/storage"
	"homedash/internal/worker"
)

// One-shot export of a month's income report, for backfills and manual
// re-runs. Defaults to the current month.
func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentSheets)
	log.SetDefault(logger)

	today := core.Today()
	year := flag.Int("year", today.Year(), "year to export")
	month := flag.Int("month", today.Month(), "month to export (1-12)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for export")
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	writer, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}

	exportWorker := worker.NewExportWorker(store.Income, writer, cfg.DefaultUserID)
	if err := exportWorker.ExportMonth(ctx, *year, *month); err != nil {
		logger.Error("Export failed", log.FieldError, err, log.FieldYear, *year, log.FieldMonth, *month)
		os.Exit(1)
	}

	logger.Info("Export complete", log.FieldYear, *year, log.FieldMonth, *month)
}
