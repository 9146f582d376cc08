//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/sales"
)

// Reference data for synthetic sales.
var (
	categories = []string{"Beauty", "Clothing", "Electronics"}
	genders    = []string{"Female", "Male"}
)

// Null rates, chosen so generated files exercise both the cleaner and
// the nullable columns downstream.
const (
	nullCustomerRate = 0.05
	nullAgeRate      = 0.08
	nullPriceRate    = 0.04
	nullRequiredRate = 0.01
)

// SalesGenerator writes synthetic retail sales CSV files.
type SalesGenerator struct {
	faker *Faker

	start time.Time
	end   time.Time
}

// NewSalesGenerator creates a generator. A non-zero seed makes output
// reproducible.
func NewSalesGenerator(seed uint64) *SalesGenerator {
	faker := NewFaker()
	if seed != 0 {
		faker = NewFakerWithSeed(seed)
	}
	return &SalesGenerator{
		faker: faker,
		start: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		end:   time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// WriteFile generates rows sale rows into a CSV file at path.
func (g *SalesGenerator) WriteFile(path string, rows int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := g.Write(f, rows); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().
		Str("output", path).
		Int("rows", rows).
		Msg("Generated sales data")

	return f.Close()
}

// Write generates rows sale rows as CSV, header included. A small share
// of rows is emitted with a missing required field so the cleaning pass
// has work to do.
func (g *SalesGenerator) Write(w io.Writer, rows int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sales.Columns); err != nil {
		return err
	}

	for i := 1; i <= rows; i++ {
		if err := cw.Write(g.row(i)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func (g *SalesGenerator) row(id int) []string {
	date := g.faker.DateRange(g.start, g.end)
	hour := ChooseWeighted(g.faker,
		[]int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22},
		[]int{4, 6, 8, 10, 9, 8, 8, 9, 10, 12, 14, 12, 8, 4})
	saleTime := fmt.Sprintf("%02d:%02d:%02d",
		hour, g.faker.Int(0, 59), g.faker.Int(0, 59))

	quantity := g.faker.Int(1, 4)
	price := g.faker.Price(25, 500)
	total := float64(quantity) * price
	cogs := total * g.faker.Float64(0.25, 0.6)

	fields := []string{
		strconv.Itoa(id),
		date.Format(sales.DateLayout),
		saleTime,
		strconv.Itoa(g.faker.Int(1, 200)),
		Choose(g.faker, genders),
		strconv.Itoa(g.faker.Int(18, 64)),
		Choose(g.faker, categories),
		strconv.Itoa(quantity),
		strconv.FormatFloat(price, 'f', 2, 64),
		strconv.FormatFloat(cogs, 'f', 2, 64),
		strconv.FormatFloat(total, 'f', 2, 64),
	}

	// Column positions follow sales.Columns.
	if g.faker.Chance(nullCustomerRate) {
		fields[3] = ""
	}
	if g.faker.Chance(nullAgeRate) {
		fields[5] = ""
	}
	if g.faker.Chance(nullPriceRate) {
		fields[8] = ""
	}
	if g.faker.Chance(nullRequiredRate) {
		fields[Choose(g.faker, []int{7, 9, 10})] = ""
	}

	return fields
}
