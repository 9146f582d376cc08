//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salescope.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for salescope.
type Config struct {
	// Connection is the PostgreSQL connection string (init/load/status).
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`
}

// RunConfig holds configuration for the in-memory report pipeline.
type RunConfig struct {
	// Input is the path of the retail sales CSV file.
	Input string `mapstructure:"input"`

	// Workers is the number of concurrent query workers.
	Workers int `mapstructure:"workers"`

	// Date is the literal date for the exact-date filter query (YYYY-MM-DD).
	Date string `mapstructure:"date"`

	// Category is the category for the category/month filter query.
	Category string `mapstructure:"category"`

	// Month is the month for the category/month filter query (YYYY-MM).
	Month string `mapstructure:"month"`

	// AgeCategory is the category for the average-age query.
	AgeCategory string `mapstructure:"age_category"`

	// ReferenceDate is the recency anchor for RFM scoring (YYYY-MM-DD).
	ReferenceDate string `mapstructure:"reference_date"`
}

// GenerateConfig holds configuration for synthetic CSV generation.
type GenerateConfig struct {
	// Rows is the number of sale rows to generate.
	Rows int `mapstructure:"rows"`

	// Output is the path of the CSV file to write.
	Output string `mapstructure:"output"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for loading a CSV into PostgreSQL.
type LoadConfig struct {
	// Input is the path of the retail sales CSV file.
	Input string `mapstructure:"input"`
}

// InitConfig holds configuration for schema initialization.
type InitConfig struct {
	// DropExisting drops the existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
// The query literals default to the values used by the original
// retail sales analysis.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Run: RunConfig{
			Input:         "retail_sales.csv",
			Workers:       4,
			Date:          "2022-11-05",
			Category:      "Clothing",
			Month:         "2022-11",
			AgeCategory:   "Beauty",
			ReferenceDate: "2023-01-01",
		},
		Generate: GenerateConfig{
			Rows:   2000,
			Output: "retail_sales.csv",
		},
		Init: InitConfig{
			DropExisting: false,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salescope.yaml
// 3. ~/.config/salescope/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salescope")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salescope"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if c.Run.Input == "" {
		return fmt.Errorf("input file is required")
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", c.Run.Date); err != nil {
		return fmt.Errorf("invalid run date %q: expected YYYY-MM-DD", c.Run.Date)
	}
	if _, err := time.Parse("2006-01", c.Run.Month); err != nil {
		return fmt.Errorf("invalid run month %q: expected YYYY-MM", c.Run.Month)
	}
	if _, err := time.Parse("2006-01-02", c.Run.ReferenceDate); err != nil {
		return fmt.Errorf("invalid reference date %q: expected YYYY-MM-DD",
			c.Run.ReferenceDate)
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Generate.Output == "" {
		return fmt.Errorf("output file is required")
	}
	return nil
}

// ValidateDB checks configuration required for commands that talk to
// PostgreSQL (init, load, status).
func (c *Config) ValidateDB() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.ValidateDB(); err != nil {
		return err
	}
	if c.Load.Input == "" {
		return fmt.Errorf("input file is required")
	}
	return nil
}
