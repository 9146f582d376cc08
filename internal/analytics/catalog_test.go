//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"errors"
	"testing"

	"github.com/salescope/salescope/internal/sales"
)

func catalogDataset() *Dataset {
	big := byCustomer(testSale(3, "2022-11-06", 1500), 2)
	noAge := inCategory(testSale(4, "2022-12-01", 80), "Beauty")
	noAge.Age = nil
	return NewDataset([]sales.Sale{
		byCustomer(testSale(1, "2022-11-05", 100), 1),
		byCustomer(inCategory(testSale(2, "2022-11-05", 200), "Beauty"), 1),
		big,
		noAge,
	})
}

func TestCatalogOrderAndNames(t *testing.T) {
	want := []string{
		"sales_on_date",
		"category_month_sales",
		"category_summary",
		"average_age",
		"high_value_sales",
		"category_gender_counts",
		"best_month_per_year",
		"top_customers",
		"unique_customers",
		"sales_by_shift",
		"monthly_growth",
		"top_categories_per_month",
		"rfm_segmentation",
		"category_profitability",
		"category_co_purchase",
		"abc_segmentation",
		"weekday_performance",
		"cohort_retention",
		"price_points",
		"age_bands",
	}

	catalog := Catalog()
	if len(catalog) != len(want) {
		t.Fatalf("Expected %d queries, got %d", len(want), len(catalog))
	}
	for i, name := range want {
		if catalog[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, catalog[i].Name)
		}
		if catalog[i].Description == "" {
			t.Errorf("Query %s has no description", name)
		}
		if catalog[i].Run == nil {
			t.Errorf("Query %s has no run function", name)
		}
	}
}

func TestCatalogRunsWithDefaults(t *testing.T) {
	d := catalogDataset()
	params := DefaultParams()

	for _, q := range Catalog() {
		res, err := q.Run(d, params)
		if err != nil {
			t.Errorf("Query %s failed: %v", q.Name, err)
			continue
		}
		if res.Name != q.Name {
			t.Errorf("Query %s returned result named %s", q.Name, res.Name)
		}
		if len(res.Columns) == 0 {
			t.Errorf("Query %s returned no columns", q.Name)
		}
		for i, row := range res.Rows {
			if len(row) != len(res.Columns) {
				t.Errorf("Query %s row %d has %d cells for %d columns",
					q.Name, i, len(row), len(res.Columns))
			}
		}
	}
}

func TestCatalogRunsOnEmptyDataset(t *testing.T) {
	d := NewDataset(nil)
	params := DefaultParams()

	for _, q := range Catalog() {
		res, err := q.Run(d, params)
		if err != nil {
			t.Errorf("Query %s failed on empty dataset: %v", q.Name, err)
			continue
		}
		// average_age reports a single NULL row; everything else is empty.
		if q.Name == "average_age" {
			requireRows(t, len(res.Rows), 1)
			if res.Rows[0][1] != NullCell {
				t.Errorf("Expected NULL average age, got %s", res.Rows[0][1])
			}
			continue
		}
		if len(res.Rows) != 0 {
			t.Errorf("Query %s returned %d rows on empty dataset", q.Name, len(res.Rows))
		}
	}
}

func TestLookup(t *testing.T) {
	q, err := Lookup("top_customers")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if q.Name != "top_customers" {
		t.Errorf("Unexpected query: %s", q.Name)
	}

	if _, err := Lookup("nonexistent"); err == nil {
		t.Error("Expected error for unknown query")
	}
}

func TestInvalidDateParam(t *testing.T) {
	d := catalogDataset()
	params := DefaultParams()
	params.Date = "not-a-date"

	q, err := Lookup("sales_on_date")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Run(d, params); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}

	// The bad literal is local to the query that consumes it.
	summary, err := Lookup("category_summary")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := summary.Run(d, params); err != nil {
		t.Errorf("Unrelated query should not see the bad date: %v", err)
	}
}

func TestInvalidMonthParam(t *testing.T) {
	d := catalogDataset()
	params := DefaultParams()
	params.Month = "2022/11"

	q, err := Lookup("category_month_sales")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Run(d, params); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestEmptyCategoryParam(t *testing.T) {
	d := catalogDataset()
	params := DefaultParams()
	params.Category = ""

	q, err := Lookup("category_month_sales")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := q.Run(d, params); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestTopCustomersResult(t *testing.T) {
	d := catalogDataset()

	q, err := Lookup("top_customers")
	if err != nil {
		t.Fatal(err)
	}
	res, err := q.Run(d, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	requireRows(t, len(res.Rows), 2)
	if res.Rows[0][0] != "2" || res.Rows[0][1] != "1500.00" {
		t.Errorf("Unexpected top customer row: %v", res.Rows[0])
	}
	if res.Rows[1][0] != "1" || res.Rows[1][1] != "300.00" {
		t.Errorf("Unexpected second customer row: %v", res.Rows[1])
	}
}

func TestMonthlyGrowthFormatting(t *testing.T) {
	d := NewDataset([]sales.Sale{
		testSale(1, "2022-01-10", 100),
		testSale(2, "2022-02-10", 150),
	})

	q, err := Lookup("monthly_growth")
	if err != nil {
		t.Fatal(err)
	}
	res, err := q.Run(d, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}

	requireRows(t, len(res.Rows), 2)
	if res.Rows[0][2] != "0.0000" {
		t.Errorf("Expected first month growth 0.0000, got %s", res.Rows[0][2])
	}
	if res.Rows[1][2] != "0.5000" {
		t.Errorf("Expected growth 0.5000, got %s", res.Rows[1][2])
	}
}

func TestSaleRowsNullRendering(t *testing.T) {
	s := testSale(1, "2022-11-05", 100)
	s.CustomerID = nil
	s.Age = nil
	s.PricePerUnit = nil

	rows := saleRows([]sales.Sale{s})
	requireRows(t, len(rows), 1)

	row := rows[0]
	if row[3] != NullCell || row[5] != NullCell || row[8] != NullCell {
		t.Errorf("Expected NULL cells for nullable fields, got %v", row)
	}
	if row[1] != "2022-11-05" || row[2] != "10:00:00" {
		t.Errorf("Unexpected date/time rendering: %v", row)
	}
}
