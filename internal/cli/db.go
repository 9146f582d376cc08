package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/sales"
	"github.com/salescope/salescope/internal/store"
)

var (
	initDropExisting bool
	loadInput        string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the PostgreSQL schema",
	Long: `Create the retail_sales table in PostgreSQL. Use --drop-existing
to drop and recreate an existing schema.

Example:
  salescope init --connection "postgres://..." --drop-existing`,
	RunE: runInit,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a sales CSV into PostgreSQL and clean it",
	Long: `Load a retail sales CSV into the retail_sales table, then delete
rows with a null in any required column. The source file and row counts
are recorded in the salescope_metadata table.

Example:
  salescope load --input retail_sales.csv --connection "postgres://..."`,
	RunE: runLoad,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show load metadata and row counts",
	RunE:  runStatus,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
	loadCmd.Flags().StringVar(&loadInput, "input", "",
		"path of the sales CSV file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if initDropExisting {
		cfg.Init.DropExisting = true
	}
	if err := cfg.ValidateDB(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := store.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := store.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Info().Msg("Schema initialization complete")
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadInput != "" {
		cfg.Load.Input = loadInput
	}
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	records, err := sales.LoadFile(cfg.Load.Input)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := store.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	copied, err := store.CopyRecords(ctx, pool, records)
	if err != nil {
		return err
	}

	deleted, err := store.DeleteIncomplete(ctx, pool)
	if err != nil {
		return err
	}

	if err := db.SaveLoadMetadata(ctx, pool, cfg.Load.Input, copied, copied-deleted); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("input", cfg.Load.Input).
		Int64("rows_loaded", copied).
		Int64("rows_cleaned", copied-deleted).
		Msg("Load complete")

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateDB(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("database has not been loaded; run 'salescope load' first")
	}

	metadata, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("%-14s %s\n", k, metadata[k])
	}

	count, err := store.CountSales(ctx, pool)
	if err != nil {
		return err
	}
	cmd.Printf("%-14s %d\n", "rows_current", count)

	return nil
}
