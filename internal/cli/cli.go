//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salescope.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salescope",
		Short: "Retail sales analytics over CSV and PostgreSQL",
		Long: `salescope loads a retail sales CSV file, removes incomplete
records, and runs a fixed catalog of twenty analytical queries over the
cleaned data: per-category aggregates, monthly rankings and growth,
customer RFM scoring, cohort retention, ABC revenue segmentation and
more.

The cleaned table can also be persisted into PostgreSQL for ad-hoc
exploration, and synthetic input files can be generated for testing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salescope.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queriesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the analytics catalog",
	Long: `List all queries in the analytics catalog in reporting order.
Each query is an independent read of the cleaned dataset.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available queries:")
		cmd.Println()
		for i, q := range analytics.Catalog() {
			cmd.Println(fmt.Sprintf("  %2d. %-26s %s", i+1, q.Name, q.Description))
		}
	},
}
