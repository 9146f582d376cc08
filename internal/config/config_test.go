//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.Run.Input != "retail_sales.csv" {
		t.Errorf("Unexpected run input: %s", cfg.Run.Input)
	}
	if cfg.Run.Workers != 4 {
		t.Errorf("Unexpected worker count: %d", cfg.Run.Workers)
	}
	if cfg.Run.Date != "2022-11-05" || cfg.Run.Month != "2022-11" {
		t.Errorf("Unexpected query literals: %s / %s", cfg.Run.Date, cfg.Run.Month)
	}
	if cfg.Generate.Rows != 2000 {
		t.Errorf("Unexpected generate rows: %d", cfg.Generate.Rows)
	}

	if err := cfg.ValidateRun(); err != nil {
		t.Errorf("Default config should validate for run: %v", err)
	}
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("Default config should validate for generate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "salescope.yaml")
	content := `connection: "postgres://localhost/sales"
log_level: debug
run:
  input: data.csv
  workers: 8
generate:
  rows: 500
  seed: 42
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Connection != "postgres://localhost/sales" {
		t.Errorf("Unexpected connection: %s", cfg.Connection)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.Run.Input != "data.csv" || cfg.Run.Workers != 8 {
		t.Errorf("Unexpected run config: %+v", cfg.Run)
	}
	// Unset keys keep their defaults.
	if cfg.Run.Date != "2022-11-05" {
		t.Errorf("Expected default date, got %s", cfg.Run.Date)
	}
	if cfg.Generate.Rows != 500 || cfg.Generate.Seed != 42 {
		t.Errorf("Unexpected generate config: %+v", cfg.Generate)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for explicitly named missing file")
	}
}

func TestValidateRun(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.Run.Input = "" }},
		{"zero workers", func(c *Config) { c.Run.Workers = 0 }},
		{"bad date", func(c *Config) { c.Run.Date = "11/05/2022" }},
		{"bad month", func(c *Config) { c.Run.Month = "November" }},
		{"bad reference date", func(c *Config) { c.Run.ReferenceDate = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.ValidateRun(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Rows = 0
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for zero rows")
	}

	cfg = DefaultConfig()
	cfg.Generate.Output = ""
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for empty output")
	}
}

func TestValidateDB(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateDB(); err == nil {
		t.Error("Expected error for missing connection string")
	}

	cfg.Connection = "postgres://localhost/sales"
	if err := cfg.ValidateDB(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/sales"
	if err := cfg.ValidateLoad(); err == nil {
		t.Error("Expected error for empty load input")
	}

	cfg.Load.Input = "retail_sales.csv"
	if err := cfg.ValidateLoad(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
