//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"strconv"
	"time"

	"github.com/salescope/salescope/internal/sales"
)

// NullCell is how a null value appears in a rendered result table.
const NullCell = "NULL"

// Result is a labeled tabular result set, the reporting contract of
// every catalog query.
type Result struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}

func fmtInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

func fmtFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func fmtNullFloat(v *float64, prec int) string {
	if v == nil {
		return NullCell
	}
	return fmtFloat(*v, prec)
}

func fmtNullInt64(v *int64) string {
	if v == nil {
		return NullCell
	}
	return fmtInt64(*v)
}

func fmtNullSmallInt(v *int) string {
	if v == nil {
		return NullCell
	}
	return fmtInt(*v)
}

func fmtDate(t time.Time) string {
	return t.Format(sales.DateLayout)
}

func fmtTime(t time.Time) string {
	return t.Format(sales.TimeLayout)
}

// saleColumns is the column list for queries that return raw sale rows.
var saleColumns = []string{
	"transaction_id", "sale_date", "sale_time", "customer_id", "gender",
	"age", "category", "quantity", "price_per_unit", "cogs", "total_sale",
}

func saleRows(matches []sales.Sale) [][]string {
	rows := make([][]string, 0, len(matches))
	for _, s := range matches {
		rows = append(rows, []string{
			fmtInt64(s.TransactionID),
			fmtDate(s.SaleDate),
			fmtTime(s.SaleTime),
			fmtNullInt64(s.CustomerID),
			s.Gender,
			fmtNullSmallInt(s.Age),
			s.Category,
			fmtInt(s.Quantity),
			fmtNullFloat(s.PricePerUnit, 2),
			fmtFloat(s.COGS, 2),
			fmtFloat(s.TotalSale, 2),
		})
	}
	return rows
}
