//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"testing"
	"time"

	"github.com/salescope/salescope/internal/sales"
)

// testSale builds a cleaned sale with sensible defaults; tests adjust
// the fields they care about.
func testSale(txn int64, date string, total float64) sales.Sale {
	d, err := time.ParseInLocation(sales.DateLayout, date, time.UTC)
	if err != nil {
		panic(err)
	}
	customer := int64(1)
	age := 30
	price := total
	return sales.Sale{
		TransactionID: txn,
		SaleDate:      d,
		SaleTime:      time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		CustomerID:    &customer,
		Gender:        "Female",
		Age:           &age,
		Category:      "Clothing",
		Quantity:      1,
		PricePerUnit:  &price,
		COGS:          total * 0.5,
		TotalSale:     total,
	}
}

func custp(v int64) *int64 { return &v }

func agep(v int) *int { return &v }

func pricep(v float64) *float64 { return &v }

func atHour(s sales.Sale, hour int) sales.Sale {
	s.SaleTime = time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC)
	return s
}

func inCategory(s sales.Sale, category string) sales.Sale {
	s.Category = category
	return s
}

func byCustomer(s sales.Sale, id int64) sales.Sale {
	s.CustomerID = custp(id)
	return s
}

func datasetTotal(d *Dataset) float64 {
	var total float64
	for _, s := range d.Sales {
		total += s.TotalSale
	}
	return total
}

func requireRows(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("Expected %d rows, got %d", want, got)
	}
}
