//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import "fmt"

// Constants fixed by the reporting contract.
const (
	minMonthQuantity   = 4
	highValueThreshold = 1000
	topCustomerLimit   = 5
	topCategoryRank    = 3
	coPurchaseLimit    = 10
)

// Query is one entry of the analytics catalog.
type Query struct {
	// Name is the query identifier.
	Name string

	// Description describes what the query computes.
	Description string

	// Run evaluates the query against a dataset. Run is a pure read;
	// it fails only when a literal in Params is invalid.
	Run func(d *Dataset, p Params) (*Result, error)
}

// Catalog returns the full query catalog in reporting order.
func Catalog() []Query {
	return []Query{
		{
			Name:        "sales_on_date",
			Description: "All sales made on a given date",
			Run:         runSalesOnDate,
		},
		{
			Name:        "category_month_sales",
			Description: "Sales of a category in a month with quantity of 4 or more",
			Run:         runCategoryMonthSales,
		},
		{
			Name:        "category_summary",
			Description: "Total sales and order count per category",
			Run:         runCategorySummary,
		},
		{
			Name:        "average_age",
			Description: "Average customer age for one category",
			Run:         runAverageAge,
		},
		{
			Name:        "high_value_sales",
			Description: "Sales with a total above 1000",
			Run:         runHighValueSales,
		},
		{
			Name:        "category_gender_counts",
			Description: "Transaction counts per category and gender",
			Run:         runCategoryGenderCounts,
		},
		{
			Name:        "best_month_per_year",
			Description: "Best selling month of each year by average sale",
			Run:         runBestMonthPerYear,
		},
		{
			Name:        "top_customers",
			Description: "Top 5 customers by total sales",
			Run:         runTopCustomers,
		},
		{
			Name:        "unique_customers",
			Description: "Distinct customers per category",
			Run:         runUniqueCustomers,
		},
		{
			Name:        "sales_by_shift",
			Description: "Order counts by morning, afternoon and evening shift",
			Run:         runSalesByShift,
		},
		{
			Name:        "monthly_growth",
			Description: "Month-over-month revenue growth",
			Run:         runMonthlyGrowth,
		},
		{
			Name:        "top_categories_per_month",
			Description: "Top 3 categories per month by revenue",
			Run:         runTopCategoriesPerMonth,
		},
		{
			Name:        "rfm_segmentation",
			Description: "Recency/frequency/monetary quartile scores per customer",
			Run:         runRFMSegmentation,
		},
		{
			Name:        "category_profitability",
			Description: "Revenue, cost, profit and margin per category",
			Run:         runCategoryProfitability,
		},
		{
			Name:        "category_co_purchase",
			Description: "Top 10 category pairs bought by the same customers",
			Run:         runCategoryCoPurchase,
		},
		{
			Name:        "abc_segmentation",
			Description: "ABC revenue segmentation of categories",
			Run:         runABCSegmentation,
		},
		{
			Name:        "weekday_performance",
			Description: "Sales totals per day of the week",
			Run:         runWeekdayPerformance,
		},
		{
			Name:        "cohort_retention",
			Description: "Active customers per first-purchase cohort and month",
			Run:         runCohortRetention,
		},
		{
			Name:        "price_points",
			Description: "Sales counts per category and unit price",
			Run:         runPricePoints,
		},
		{
			Name:        "age_bands",
			Description: "Sales per customer age band",
			Run:         runAgeBands,
		},
	}
}

// Lookup finds a catalog query by name.
func Lookup(name string) (Query, error) {
	for _, q := range Catalog() {
		if q.Name == name {
			return q, nil
		}
	}
	return Query{}, fmt.Errorf("unknown query: %s", name)
}

func runSalesOnDate(d *Dataset, p Params) (*Result, error) {
	date, err := parseDateArg(p.Date)
	if err != nil {
		return nil, err
	}
	return &Result{
		Name:    "sales_on_date",
		Columns: saleColumns,
		Rows:    saleRows(d.SalesOn(date)),
	}, nil
}

func runCategoryMonthSales(d *Dataset, p Params) (*Result, error) {
	month, err := parseMonthArg(p.Month)
	if err != nil {
		return nil, err
	}
	if p.Category == "" {
		return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidArgument)
	}
	matches := d.CategorySalesInMonth(p.Category, month, minMonthQuantity)
	return &Result{
		Name:    "category_month_sales",
		Columns: saleColumns,
		Rows:    saleRows(matches),
	}, nil
}

func runCategorySummary(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "category_summary",
		Columns: []string{"category", "net_sale", "total_orders"},
	}
	for _, cs := range d.CategorySummaries() {
		res.Rows = append(res.Rows, []string{
			cs.Category, fmtFloat(cs.NetSale, 2), fmtInt(cs.TotalOrders),
		})
	}
	return res, nil
}

func runAverageAge(d *Dataset, p Params) (*Result, error) {
	if p.AgeCategory == "" {
		return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidArgument)
	}
	return &Result{
		Name:    "average_age",
		Columns: []string{"category", "avg_age"},
		Rows: [][]string{
			{p.AgeCategory, fmtNullFloat(d.AverageAge(p.AgeCategory), 2)},
		},
	}, nil
}

func runHighValueSales(d *Dataset, _ Params) (*Result, error) {
	return &Result{
		Name:    "high_value_sales",
		Columns: saleColumns,
		Rows:    saleRows(d.HighValueSales(highValueThreshold)),
	}, nil
}

func runCategoryGenderCounts(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "category_gender_counts",
		Columns: []string{"category", "gender", "total_transactions"},
	}
	for _, c := range d.TransactionsByCategoryGender() {
		res.Rows = append(res.Rows, []string{
			c.Category, c.Gender, fmtInt(c.Transactions),
		})
	}
	return res, nil
}

func runBestMonthPerYear(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "best_month_per_year",
		Columns: []string{"year", "month", "avg_sale"},
	}
	for _, m := range d.BestMonthPerYear() {
		res.Rows = append(res.Rows, []string{
			fmtInt(m.Year), fmtInt(int(m.Month)), fmtFloat(m.AverageSale, 2),
		})
	}
	return res, nil
}

func runTopCustomers(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "top_customers",
		Columns: []string{"customer_id", "total_sales"},
	}
	for _, c := range d.TopCustomers(topCustomerLimit) {
		res.Rows = append(res.Rows, []string{
			fmtInt64(c.CustomerID), fmtFloat(c.TotalSales, 2),
		})
	}
	return res, nil
}

func runUniqueCustomers(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "unique_customers",
		Columns: []string{"category", "unique_customers"},
	}
	for _, c := range d.UniqueCustomersPerCategory() {
		res.Rows = append(res.Rows, []string{
			c.Category, fmtInt(c.UniqueCustomers),
		})
	}
	return res, nil
}

func runSalesByShift(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "sales_by_shift",
		Columns: []string{"shift", "total_orders"},
	}
	for _, s := range d.SalesByShift() {
		res.Rows = append(res.Rows, []string{s.Shift, fmtInt(s.Orders)})
	}
	return res, nil
}

func runMonthlyGrowth(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "monthly_growth",
		Columns: []string{"month", "total_sales", "growth"},
	}
	for _, m := range d.MonthlyGrowth() {
		res.Rows = append(res.Rows, []string{
			m.Month, fmtFloat(m.TotalSales, 2), fmtNullFloat(m.Growth, 4),
		})
	}
	return res, nil
}

func runTopCategoriesPerMonth(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "top_categories_per_month",
		Columns: []string{"month", "category", "total_sales", "rank"},
	}
	for _, r := range d.TopCategoriesPerMonth(topCategoryRank) {
		res.Rows = append(res.Rows, []string{
			r.Month, r.Category, fmtFloat(r.TotalSales, 2), fmtInt(r.Rank),
		})
	}
	return res, nil
}

func runRFMSegmentation(d *Dataset, p Params) (*Result, error) {
	reference, err := parseDateArg(p.ReferenceDate)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Name: "rfm_segmentation",
		Columns: []string{
			"customer_id", "recency_days", "frequency", "monetary",
			"r_score", "f_score", "m_score",
		},
	}
	for _, s := range d.RFMSegmentation(reference) {
		res.Rows = append(res.Rows, []string{
			fmtInt64(s.CustomerID),
			fmtInt(s.RecencyDays),
			fmtInt(s.Frequency),
			fmtFloat(s.Monetary, 2),
			fmtInt(s.RecencyScore),
			fmtInt(s.FrequencyScore),
			fmtInt(s.MonetaryScore),
		})
	}
	return res, nil
}

func runCategoryProfitability(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name: "category_profitability",
		Columns: []string{
			"category", "total_revenue", "total_cost", "profit", "profit_margin_pct",
		},
	}
	for _, c := range d.CategoryProfitability() {
		res.Rows = append(res.Rows, []string{
			c.Category,
			fmtFloat(c.Revenue, 2),
			fmtFloat(c.Cost, 2),
			fmtFloat(c.Profit, 2),
			fmtNullFloat(c.MarginPct, 2),
		})
	}
	return res, nil
}

func runCategoryCoPurchase(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "category_co_purchase",
		Columns: []string{"category_1", "category_2", "customers_buying_both"},
	}
	for _, p := range d.CategoryCoPurchase(coPurchaseLimit) {
		res.Rows = append(res.Rows, []string{
			p.Category1, p.Category2, fmtInt(p.Customers),
		})
	}
	return res, nil
}

func runABCSegmentation(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name: "abc_segmentation",
		Columns: []string{
			"category", "revenue", "cumulative_revenue", "cumulative_percentage", "segment",
		},
	}
	for _, s := range d.ABCSegments() {
		res.Rows = append(res.Rows, []string{
			s.Category,
			fmtFloat(s.Revenue, 2),
			fmtFloat(s.CumulativeRevenue, 2),
			fmtFloat(s.CumulativePct, 2),
			s.Segment,
		})
	}
	return res, nil
}

func runWeekdayPerformance(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "weekday_performance",
		Columns: []string{"day_of_week", "total_sales", "avg_sale", "total_transactions"},
	}
	for _, w := range d.WeekdayPerformance() {
		res.Rows = append(res.Rows, []string{
			w.Weekday,
			fmtFloat(w.TotalSales, 2),
			fmtFloat(w.AverageSale, 2),
			fmtInt(w.Transactions),
		})
	}
	return res, nil
}

func runCohortRetention(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "cohort_retention",
		Columns: []string{"cohort_month", "activity_month", "active_customers"},
	}
	for _, c := range d.CohortRetention() {
		res.Rows = append(res.Rows, []string{
			c.CohortMonth, c.ActivityMonth, fmtInt(c.ActiveCustomers),
		})
	}
	return res, nil
}

func runPricePoints(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "price_points",
		Columns: []string{"category", "price_per_unit", "total_sales", "total_quantity"},
	}
	for _, p := range d.PricePoints() {
		res.Rows = append(res.Rows, []string{
			p.Category,
			fmtNullFloat(p.PricePerUnit, 2),
			fmtInt(p.Sales),
			fmtInt(p.Quantity),
		})
	}
	return res, nil
}

func runAgeBands(d *Dataset, _ Params) (*Result, error) {
	res := &Result{
		Name:    "age_bands",
		Columns: []string{"age_band", "total_sales", "unique_customers", "avg_sale"},
	}
	for _, b := range d.AgeBands() {
		res.Rows = append(res.Rows, []string{
			b.Band,
			fmtFloat(b.TotalSales, 2),
			fmtInt(b.UniqueCustomers),
			fmtFloat(b.AverageSale, 2),
		})
	}
	return res, nil
}
