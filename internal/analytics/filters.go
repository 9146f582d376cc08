//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"time"

	"github.com/salescope/salescope/internal/sales"
)

// SalesOn returns all sales made on the given date, in dataset order.
func (d *Dataset) SalesOn(date time.Time) []sales.Sale {
	var matches []sales.Sale
	for _, s := range d.Sales {
		if s.SaleDate.Equal(date) {
			matches = append(matches, s)
		}
	}
	return matches
}

// CategorySalesInMonth returns sales of a category within a calendar
// month where at least minQuantity units were sold.
func (d *Dataset) CategorySalesInMonth(category string, month time.Time, minQuantity int) []sales.Sale {
	var matches []sales.Sale
	for _, s := range d.Sales {
		if s.Category != category {
			continue
		}
		if s.SaleDate.Year() != month.Year() || s.SaleDate.Month() != month.Month() {
			continue
		}
		if s.Quantity < minQuantity {
			continue
		}
		matches = append(matches, s)
	}
	return matches
}

// HighValueSales returns sales whose total exceeds the threshold.
func (d *Dataset) HighValueSales(threshold float64) []sales.Sale {
	var matches []sales.Sale
	for _, s := range d.Sales {
		if s.TotalSale > threshold {
			matches = append(matches, s)
		}
	}
	return matches
}
