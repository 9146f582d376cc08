//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package analytics implements the fixed catalog of analytical queries
// over a cleaned retail sales dataset. Every query is a pure read of the
// dataset; queries never depend on each other's output.
package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/salescope/salescope/internal/sales"
)

// ErrInvalidArgument marks a query literal that failed validation. The
// failure is local to the query; other queries are unaffected.
var ErrInvalidArgument = errors.New("invalid argument")

// Dataset is an immutable snapshot of cleaned sales. It must not be
// modified after construction; queries only read it.
type Dataset struct {
	Sales []sales.Sale
}

// NewDataset wraps cleaned sales in a Dataset.
func NewDataset(s []sales.Sale) *Dataset {
	return &Dataset{Sales: s}
}

// Params holds the query literals that parameterize the catalog. String
// fields are validated lazily by the query that consumes them.
type Params struct {
	// Date is the literal for the exact-date filter (YYYY-MM-DD).
	Date string

	// Category and Month select the category/month filter (YYYY-MM).
	Category string
	Month    string

	// AgeCategory restricts the average-age query.
	AgeCategory string

	// ReferenceDate anchors RFM recency (YYYY-MM-DD).
	ReferenceDate string
}

// DefaultParams returns the literals used by the original retail sales
// analysis.
func DefaultParams() Params {
	return Params{
		Date:          "2022-11-05",
		Category:      "Clothing",
		Month:         "2022-11",
		AgeCategory:   "Beauty",
		ReferenceDate: "2023-01-01",
	}
}

func parseDateArg(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sales.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidArgument, s)
	}
	return t, nil
}

func parseMonthArg(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid month %q", ErrInvalidArgument, s)
	}
	return t, nil
}

// monthKey formats a date as YYYY-MM. Chronological order equals
// lexicographic order, which the month-based queries rely on.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
