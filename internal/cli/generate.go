package cli

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/datagen"
)

var (
	generateRows   int
	generateOutput string
	generateSeed   uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic sales CSV file",
	Long: `Generate a synthetic retail sales CSV file. A small share of
rows is emitted with missing values so the cleaning pass is exercised.

Example:
  salescope generate --rows 5000 --output retail_sales.csv --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateRows, "rows", 0,
		"number of rows to generate")
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"path of the CSV file to write")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed (0 = non-deterministic)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateRows > 0 {
		cfg.Generate.Rows = generateRows
	}
	if generateOutput != "" {
		cfg.Generate.Output = generateOutput
	}
	if generateSeed != 0 {
		cfg.Generate.Seed = generateSeed
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	gen := datagen.NewSalesGenerator(cfg.Generate.Seed)
	return gen.WriteFile(cfg.Generate.Output, cfg.Generate.Rows)
}
