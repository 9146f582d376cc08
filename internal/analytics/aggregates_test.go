//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"math"
	"testing"

	"github.com/salescope/salescope/internal/sales"
)

func TestCategorySummaries(t *testing.T) {
	d := NewDataset([]sales.Sale{
		inCategory(testSale(1, "2022-11-05", 100), "Beauty"),
		inCategory(testSale(2, "2022-11-06", 200), "Beauty"),
		testSale(3, "2022-11-07", 50),
	})

	summaries := d.CategorySummaries()
	requireRows(t, len(summaries), 2)
	if summaries[0].Category != "Beauty" || summaries[0].NetSale != 300 || summaries[0].TotalOrders != 2 {
		t.Errorf("Unexpected Beauty summary: %+v", summaries[0])
	}
	if summaries[1].Category != "Clothing" || summaries[1].NetSale != 50 || summaries[1].TotalOrders != 1 {
		t.Errorf("Unexpected Clothing summary: %+v", summaries[1])
	}
}

func TestCategorySummariesSumToDatasetTotal(t *testing.T) {
	d := NewDataset([]sales.Sale{
		inCategory(testSale(1, "2022-11-05", 123.45), "Beauty"),
		inCategory(testSale(2, "2022-11-06", 200), "Electronics"),
		testSale(3, "2022-11-07", 76.55),
		testSale(4, "2022-12-01", 900),
	})

	var sum float64
	for _, cs := range d.CategorySummaries() {
		sum += cs.NetSale
	}
	if math.Abs(sum-datasetTotal(d)) > 1e-9 {
		t.Errorf("Category totals %v do not sum to dataset total %v", sum, datasetTotal(d))
	}
}

func TestAverageAge(t *testing.T) {
	withAge := func(txn int64, age int) sales.Sale {
		s := inCategory(testSale(txn, "2022-11-05", 100), "Beauty")
		s.Age = agep(age)
		return s
	}
	noAge := inCategory(testSale(3, "2022-11-05", 100), "Beauty")
	noAge.Age = nil

	d := NewDataset([]sales.Sale{withAge(1, 30), withAge(2, 41), noAge})

	avg := d.AverageAge("Beauty")
	if avg == nil {
		t.Fatal("Expected an average age")
	}
	// Nulls are ignored, and the result is rounded to two decimals.
	if *avg != 35.5 {
		t.Errorf("Expected 35.5, got %v", *avg)
	}

	if d.AverageAge("Electronics") != nil {
		t.Error("Expected nil average for category with no sales")
	}
}

func TestAverageAgeAllNull(t *testing.T) {
	s := testSale(1, "2022-11-05", 100)
	s.Age = nil
	d := NewDataset([]sales.Sale{s})

	if d.AverageAge("Clothing") != nil {
		t.Error("Expected nil average when every age is null")
	}
}

func TestTransactionsByCategoryGender(t *testing.T) {
	male := testSale(3, "2022-11-07", 100)
	male.Gender = "Male"

	d := NewDataset([]sales.Sale{
		testSale(1, "2022-11-05", 100),
		testSale(2, "2022-11-06", 100),
		male,
		inCategory(testSale(4, "2022-11-08", 100), "Beauty"),
	})

	counts := d.TransactionsByCategoryGender()
	requireRows(t, len(counts), 3)

	want := []CategoryGenderCount{
		{Category: "Beauty", Gender: "Female", Transactions: 1},
		{Category: "Clothing", Gender: "Female", Transactions: 2},
		{Category: "Clothing", Gender: "Male", Transactions: 1},
	}
	for i, w := range want {
		if counts[i] != w {
			t.Errorf("Row %d: expected %+v, got %+v", i, w, counts[i])
		}
	}
}

func TestUniqueCustomersPerCategory(t *testing.T) {
	anon := testSale(4, "2022-11-08", 100)
	anon.CustomerID = nil

	d := NewDataset([]sales.Sale{
		byCustomer(testSale(1, "2022-11-05", 100), 5),
		byCustomer(testSale(2, "2022-11-06", 100), 5), // repeat customer
		byCustomer(testSale(3, "2022-11-07", 100), 8),
		anon,
	})

	counts := d.UniqueCustomersPerCategory()
	requireRows(t, len(counts), 1)
	if counts[0].Category != "Clothing" || counts[0].UniqueCustomers != 2 {
		t.Errorf("Unexpected counts: %+v", counts[0])
	}
}

func TestCategoryProfitability(t *testing.T) {
	// testSale sets COGS to half the total.
	d := NewDataset([]sales.Sale{
		testSale(1, "2022-11-05", 200),
		inCategory(testSale(2, "2022-11-06", 1000), "Beauty"),
	})

	profits := d.CategoryProfitability()
	requireRows(t, len(profits), 2)

	// Ordered by profit descending.
	if profits[0].Category != "Beauty" {
		t.Errorf("Expected Beauty first, got %s", profits[0].Category)
	}
	if profits[0].Revenue != 1000 || profits[0].Cost != 500 || profits[0].Profit != 500 {
		t.Errorf("Unexpected Beauty profit: %+v", profits[0])
	}
	if profits[0].MarginPct == nil || *profits[0].MarginPct != 50 {
		t.Errorf("Expected 50%% margin, got %v", profits[0].MarginPct)
	}
}

func TestCategoryProfitabilityZeroRevenue(t *testing.T) {
	s := testSale(1, "2022-11-05", 0)
	s.COGS = 10
	d := NewDataset([]sales.Sale{s})

	profits := d.CategoryProfitability()
	requireRows(t, len(profits), 1)
	if profits[0].MarginPct != nil {
		t.Errorf("Expected null margin for zero revenue, got %v", *profits[0].MarginPct)
	}
}

func TestWeekdayPerformance(t *testing.T) {
	d := NewDataset([]sales.Sale{
		testSale(1, "2022-11-05", 100), // Saturday
		testSale(2, "2022-11-12", 300), // Saturday
		testSale(3, "2022-11-06", 500), // Sunday
	})

	stats := d.WeekdayPerformance()
	requireRows(t, len(stats), 2)

	// Sunday leads on total despite fewer transactions.
	if stats[0].Weekday != "Sunday" || stats[0].TotalSales != 500 || stats[0].Transactions != 1 {
		t.Errorf("Unexpected top weekday: %+v", stats[0])
	}
	if stats[1].Weekday != "Saturday" || stats[1].TotalSales != 400 || stats[1].AverageSale != 200 {
		t.Errorf("Unexpected second weekday: %+v", stats[1])
	}
}

func TestPricePoints(t *testing.T) {
	at := func(txn int64, price float64, qty int) sales.Sale {
		s := testSale(txn, "2022-11-05", price*float64(qty))
		s.PricePerUnit = pricep(price)
		s.Quantity = qty
		return s
	}
	noPrice := testSale(4, "2022-11-05", 100)
	noPrice.PricePerUnit = nil

	d := NewDataset([]sales.Sale{at(1, 25, 2), at(2, 25, 3), at(3, 50, 1), noPrice})

	points := d.PricePoints()
	requireRows(t, len(points), 3)

	if points[0].PricePerUnit == nil || *points[0].PricePerUnit != 25 {
		t.Errorf("Expected the 25.00 price point first, got %+v", points[0])
	}
	if points[0].Sales != 2 || points[0].Quantity != 5 {
		t.Errorf("Unexpected aggregation: %+v", points[0])
	}
	// Null prices form their own point.
	var sawNull bool
	for _, pp := range points {
		if pp.PricePerUnit == nil {
			sawNull = true
			if pp.Sales != 1 {
				t.Errorf("Unexpected null price point: %+v", pp)
			}
		}
	}
	if !sawNull {
		t.Error("Expected a null price point")
	}
}
