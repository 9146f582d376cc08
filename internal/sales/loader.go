//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Layouts for the date and time-of-day columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Columns is the required CSV header, in canonical order. The loader
// accepts any column order but every column must be present exactly once.
var Columns = []string{
	"transaction_id",
	"sale_date",
	"sale_time",
	"customer_id",
	"gender",
	"age",
	"category",
	"quantity",
	"price_per_unit",
	"cogs",
	"total_sale",
}

// RowError reports a malformed cell. Load errors are fatal to the
// pipeline, so the row index and column name must identify the culprit.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: column %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoadFile loads sale records from a CSV file, preserving source order.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load reads sale records from CSV data, preserving source order. The
// first row must be a header naming all sale columns. Empty cells (and
// the literal NULL) are nulls; any other malformed cell aborts the load.
func Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		rec, err := parseRow(row, fields, index)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndex maps each sale column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		index[name] = i
	}

	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	if len(index) != len(Columns) {
		for name := range index {
			if !isSaleColumn(name) {
				return nil, fmt.Errorf("unknown column %q in header", name)
			}
		}
	}

	return index, nil
}

func isSaleColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}

func parseRow(row int, fields []string, index map[string]int) (Record, error) {
	rec := Record{Line: row}

	cell := func(column string) string {
		i := index[column]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	var err error
	if rec.TransactionID, err = parseIntCell(cell("transaction_id")); err != nil {
		return rec, &RowError{Row: row, Column: "transaction_id", Err: err}
	}
	if rec.SaleDate, err = parseDateCell(cell("sale_date")); err != nil {
		return rec, &RowError{Row: row, Column: "sale_date", Err: err}
	}
	if rec.SaleTime, err = parseTimeCell(cell("sale_time")); err != nil {
		return rec, &RowError{Row: row, Column: "sale_time", Err: err}
	}
	if rec.CustomerID, err = parseIntCell(cell("customer_id")); err != nil {
		return rec, &RowError{Row: row, Column: "customer_id", Err: err}
	}
	rec.Gender = parseStringCell(cell("gender"))
	if rec.Age, err = parseSmallIntCell(cell("age")); err != nil {
		return rec, &RowError{Row: row, Column: "age", Err: err}
	}
	rec.Category = parseStringCell(cell("category"))
	if rec.Quantity, err = parseSmallIntCell(cell("quantity")); err != nil {
		return rec, &RowError{Row: row, Column: "quantity", Err: err}
	}
	if rec.PricePerUnit, err = parseFloatCell(cell("price_per_unit")); err != nil {
		return rec, &RowError{Row: row, Column: "price_per_unit", Err: err}
	}
	if rec.COGS, err = parseFloatCell(cell("cogs")); err != nil {
		return rec, &RowError{Row: row, Column: "cogs", Err: err}
	}
	if rec.TotalSale, err = parseFloatCell(cell("total_sale")); err != nil {
		return rec, &RowError{Row: row, Column: "total_sale", Err: err}
	}

	return rec, nil
}

// isNull reports whether a cell holds a null. CSV exports commonly spell
// nulls as empty cells or the literal NULL.
func isNull(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}

func parseStringCell(s string) *string {
	if isNull(s) {
		return nil
	}
	return &s
}

func parseIntCell(s string) (*int64, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return &v, nil
}

func parseSmallIntCell(s string) (*int, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return &v, nil
}

func parseFloatCell(s string) (*float64, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

func parseDateCell(s string) (*time.Time, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", s)
	}
	return &v, nil
}

func parseTimeCell(s string) (*time.Time, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", s)
	}
	return &v, nil
}
