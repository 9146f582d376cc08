package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/render"
	"github.com/salescope/salescope/internal/report"
	"github.com/salescope/salescope/internal/sales"
)

var (
	runInput         string
	runQuery         string
	runWorkers       int
	runDate          string
	runCategory      string
	runMonth         string
	runAgeCategory   string
	runReferenceDate string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a sales CSV, clean it and run the analytics catalog",
	Long: `Run the full reporting pipeline: load the input CSV, drop
records with a missing required field, and evaluate the analytics
catalog over the cleaned data. Each query is rendered as a labeled
table on stdout.

Example:
  salescope run --input retail_sales.csv
  salescope run --input retail_sales.csv --query rfm_segmentation
  salescope run --input retail_sales.csv --date 2022-11-05 --month 2022-11`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "",
		"path of the sales CSV file")
	runCmd.Flags().StringVar(&runQuery, "query", "",
		"run a single query by name (default: full catalog)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0,
		"number of concurrent query workers")
	runCmd.Flags().StringVar(&runDate, "date", "",
		"date literal for sales_on_date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runCategory, "category", "",
		"category literal for category_month_sales")
	runCmd.Flags().StringVar(&runMonth, "month", "",
		"month literal for category_month_sales (YYYY-MM)")
	runCmd.Flags().StringVar(&runAgeCategory, "age-category", "",
		"category literal for average_age")
	runCmd.Flags().StringVar(&runReferenceDate, "reference-date", "",
		"recency anchor for rfm_segmentation (YYYY-MM-DD)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runInput != "" {
		cfg.Run.Input = runInput
	}
	if runWorkers > 0 {
		cfg.Run.Workers = runWorkers
	}
	if runDate != "" {
		cfg.Run.Date = runDate
	}
	if runCategory != "" {
		cfg.Run.Category = runCategory
	}
	if runMonth != "" {
		cfg.Run.Month = runMonth
	}
	if runAgeCategory != "" {
		cfg.Run.AgeCategory = runAgeCategory
	}
	if runReferenceDate != "" {
		cfg.Run.ReferenceDate = runReferenceDate
	}

	// Validate configuration
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	records, err := sales.LoadFile(cfg.Run.Input)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	cleaned := sales.Clean(records)
	logging.Info().
		Str("input", cfg.Run.Input).
		Int("rows_loaded", len(records)).
		Int("rows_cleaned", len(cleaned)).
		Int("rows_dropped", len(records)-len(cleaned)).
		Msg("Loaded sales data")

	dataset := analytics.NewDataset(cleaned)
	params := analytics.Params{
		Date:          cfg.Run.Date,
		Category:      cfg.Run.Category,
		Month:         cfg.Run.Month,
		AgeCategory:   cfg.Run.AgeCategory,
		ReferenceDate: cfg.Run.ReferenceDate,
	}

	queries := analytics.Catalog()
	if runQuery != "" {
		q, err := analytics.Lookup(runQuery)
		if err != nil {
			return err
		}
		queries = []analytics.Query{q}
	}

	// Handle shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	runner := report.NewRunner(dataset, params, cfg.Run.Workers)
	reports := runner.Run(ctx, queries)

	for _, rep := range reports {
		if rep.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "-- %s --\nerror: %v\n\n", rep.Name, rep.Err)
			continue
		}
		if err := render.Table(cmd.OutOrStdout(), rep.Result); err != nil {
			return err
		}
	}

	if failed := runner.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(reports))
	}
	return nil
}
