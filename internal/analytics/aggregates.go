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
	"sort"
	"time"
)

// CategorySummary aggregates revenue and order count per category.
type CategorySummary struct {
	Category    string
	NetSale     float64
	TotalOrders int
}

// CategorySummaries returns the per-category revenue and order counts,
// ordered by category.
func (d *Dataset) CategorySummaries() []CategorySummary {
	byCategory := make(map[string]*CategorySummary)
	for _, s := range d.Sales {
		cs, ok := byCategory[s.Category]
		if !ok {
			cs = &CategorySummary{Category: s.Category}
			byCategory[s.Category] = cs
		}
		cs.NetSale += s.TotalSale
		cs.TotalOrders++
	}

	out := make([]CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// AverageAge returns the average customer age for a category, rounded to
// two decimal places. Null ages are ignored; the result is nil when no
// age is known for the category.
func (d *Dataset) AverageAge(category string) *float64 {
	var sum, count float64
	for _, s := range d.Sales {
		if s.Category != category || s.Age == nil {
			continue
		}
		sum += float64(*s.Age)
		count++
	}
	if count == 0 {
		return nil
	}
	avg := math.Round(sum/count*100) / 100
	return &avg
}

// CategoryGenderCount is the number of transactions for one
// (category, gender) combination.
type CategoryGenderCount struct {
	Category     string
	Gender       string
	Transactions int
}

// TransactionsByCategoryGender counts transactions per category and
// gender, sorted by category then gender.
func (d *Dataset) TransactionsByCategoryGender() []CategoryGenderCount {
	type key struct{ category, gender string }
	counts := make(map[key]int)
	for _, s := range d.Sales {
		counts[key{s.Category, s.Gender}]++
	}

	out := make([]CategoryGenderCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, CategoryGenderCount{
			Category:     k.category,
			Gender:       k.gender,
			Transactions: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Gender < out[j].Gender
	})
	return out
}

// CategoryCustomerCount is the number of distinct customers per category.
type CategoryCustomerCount struct {
	Category        string
	UniqueCustomers int
}

// UniqueCustomersPerCategory counts distinct customer ids per category,
// ordered by category. Sales without a customer id are not counted.
func (d *Dataset) UniqueCustomersPerCategory() []CategoryCustomerCount {
	seen := make(map[string]map[int64]struct{})
	for _, s := range d.Sales {
		if s.CustomerID == nil {
			continue
		}
		set, ok := seen[s.Category]
		if !ok {
			set = make(map[int64]struct{})
			seen[s.Category] = set
		}
		set[*s.CustomerID] = struct{}{}
	}

	out := make([]CategoryCustomerCount, 0, len(seen))
	for category, set := range seen {
		out = append(out, CategoryCustomerCount{
			Category:        category,
			UniqueCustomers: len(set),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CategoryProfit is the profitability breakdown of one category.
// MarginPct is null when the category has no revenue.
type CategoryProfit struct {
	Category  string
	Revenue   float64
	Cost      float64
	Profit    float64
	MarginPct *float64
}

// CategoryProfitability computes revenue, cost, profit and profit margin
// per category, ordered by profit descending.
func (d *Dataset) CategoryProfitability() []CategoryProfit {
	byCategory := make(map[string]*CategoryProfit)
	for _, s := range d.Sales {
		cp, ok := byCategory[s.Category]
		if !ok {
			cp = &CategoryProfit{Category: s.Category}
			byCategory[s.Category] = cp
		}
		cp.Revenue += s.TotalSale
		cp.Cost += s.COGS
	}

	out := make([]CategoryProfit, 0, len(byCategory))
	for _, cp := range byCategory {
		cp.Profit = cp.Revenue - cp.Cost
		// Division by zero yields a null margin, not an error.
		if cp.Revenue != 0 {
			margin := cp.Profit / cp.Revenue * 100
			cp.MarginPct = &margin
		}
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Profit != out[j].Profit {
			return out[i].Profit > out[j].Profit
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// WeekdayStats aggregates sales for one day of the week.
type WeekdayStats struct {
	Weekday      string
	TotalSales   float64
	AverageSale  float64
	Transactions int
}

// WeekdayPerformance aggregates total, average and count of sales per
// day of the week, ordered by total descending.
func (d *Dataset) WeekdayPerformance() []WeekdayStats {
	var totals [7]float64
	var counts [7]int
	for _, s := range d.Sales {
		wd := s.SaleDate.Weekday()
		totals[wd] += s.TotalSale
		counts[wd]++
	}

	var out []WeekdayStats
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		out = append(out, WeekdayStats{
			Weekday:      wd.String(),
			TotalSales:   totals[wd],
			AverageSale:  totals[wd] / float64(counts[wd]),
			Transactions: counts[wd],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales > out[j].TotalSales
	})
	return out
}

// PricePoint aggregates sales of one (category, price_per_unit) pair.
// PricePerUnit is null for sales loaded without a unit price.
type PricePoint struct {
	Category     string
	PricePerUnit *float64
	Sales        int
	Quantity     int
}

// PricePoints counts sales and sums quantity per (category, unit price)
// pair, ordered by category then sales count descending.
func (d *Dataset) PricePoints() []PricePoint {
	type key struct {
		category string
		price    float64
		null     bool
	}
	points := make(map[key]*PricePoint)
	for _, s := range d.Sales {
		k := key{category: s.Category, null: s.PricePerUnit == nil}
		if s.PricePerUnit != nil {
			k.price = *s.PricePerUnit
		}
		pp, ok := points[k]
		if !ok {
			pp = &PricePoint{Category: s.Category, PricePerUnit: s.PricePerUnit}
			points[k] = pp
		}
		pp.Sales++
		pp.Quantity += s.Quantity
	}

	out := make([]PricePoint, 0, len(points))
	for _, pp := range points {
		out = append(out, *pp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		// Null prices sort last within equal counts.
		switch {
		case out[i].PricePerUnit == nil:
			return false
		case out[j].PricePerUnit == nil:
			return true
		default:
			return *out[i].PricePerUnit < *out[j].PricePerUnit
		}
	})
	return out
}
