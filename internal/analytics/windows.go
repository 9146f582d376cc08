//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import (
	"sort"
	"time"
)

// MonthlyAverage is the average sale of one calendar month, ranked
// within its year.
type MonthlyAverage struct {
	Year        int
	Month       time.Month
	AverageSale float64
	Rank        int
}

// BestMonthPerYear computes the average sale per (year, month) and keeps
// the top-ranked month of each year. Competition ranking: months with an
// equal average share a rank, so a year can have several best months.
func (d *Dataset) BestMonthPerYear() []MonthlyAverage {
	type key struct {
		year  int
		month time.Month
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, s := range d.Sales {
		k := key{s.SaleDate.Year(), s.SaleDate.Month()}
		sums[k] += s.TotalSale
		counts[k]++
	}

	byYear := make(map[int][]MonthlyAverage)
	years := make([]int, 0)
	for k, sum := range sums {
		if _, ok := byYear[k.year]; !ok {
			years = append(years, k.year)
		}
		byYear[k.year] = append(byYear[k.year], MonthlyAverage{
			Year:        k.year,
			Month:       k.month,
			AverageSale: sum / float64(counts[k]),
		})
	}
	sort.Ints(years)

	var out []MonthlyAverage
	for _, year := range years {
		months := byYear[year]
		sort.Slice(months, func(i, j int) bool {
			if months[i].AverageSale != months[j].AverageSale {
				return months[i].AverageSale > months[j].AverageSale
			}
			return months[i].Month < months[j].Month
		})
		for i := range months {
			if i > 0 && months[i].AverageSale == months[i-1].AverageSale {
				months[i].Rank = months[i-1].Rank
			} else {
				months[i].Rank = i + 1
			}
			if months[i].Rank != 1 {
				break
			}
			out = append(out, months[i])
		}
	}
	return out
}

// MonthGrowth is the total revenue of one calendar month and its growth
// relative to the previous month. Growth is null when the previous
// month's total is zero, and zero for the first month.
type MonthGrowth struct {
	Month      string
	TotalSales float64
	Growth     *float64
}

// MonthlyGrowth computes month-over-month revenue growth across the full
// date range, ordered chronologically.
func (d *Dataset) MonthlyGrowth() []MonthGrowth {
	sums := make(map[string]float64)
	for _, s := range d.Sales {
		sums[monthKey(s.SaleDate)] += s.TotalSale
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthGrowth, 0, len(months))
	for i, m := range months {
		mg := MonthGrowth{Month: m, TotalSales: sums[m]}
		if i == 0 {
			zero := 0.0
			mg.Growth = &zero
		} else if prev := sums[months[i-1]]; prev != 0 {
			growth := (sums[m] - prev) / prev
			mg.Growth = &growth
		}
		out = append(out, mg)
	}
	return out
}

// MonthCategoryRank is one category's revenue within a month, ranked
// against the other categories of that month.
type MonthCategoryRank struct {
	Month      string
	Category   string
	TotalSales float64
	Rank       int
}

// TopCategoriesPerMonth ranks categories by revenue within each month
// (competition ranking) and keeps ranks up to maxRank. Months are
// ordered chronologically.
func (d *Dataset) TopCategoriesPerMonth(maxRank int) []MonthCategoryRank {
	type key struct{ month, category string }
	sums := make(map[key]float64)
	for _, s := range d.Sales {
		sums[key{monthKey(s.SaleDate), s.Category}] += s.TotalSale
	}

	byMonth := make(map[string][]MonthCategoryRank)
	months := make([]string, 0)
	for k, sum := range sums {
		if _, ok := byMonth[k.month]; !ok {
			months = append(months, k.month)
		}
		byMonth[k.month] = append(byMonth[k.month], MonthCategoryRank{
			Month:      k.month,
			Category:   k.category,
			TotalSales: sum,
		})
	}
	sort.Strings(months)

	var out []MonthCategoryRank
	for _, m := range months {
		ranked := byMonth[m]
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].TotalSales != ranked[j].TotalSales {
				return ranked[i].TotalSales > ranked[j].TotalSales
			}
			return ranked[i].Category < ranked[j].Category
		})
		for i := range ranked {
			if i > 0 && ranked[i].TotalSales == ranked[i-1].TotalSales {
				ranked[i].Rank = ranked[i-1].Rank
			} else {
				ranked[i].Rank = i + 1
			}
			if ranked[i].Rank > maxRank {
				break
			}
			out = append(out, ranked[i])
		}
	}
	return out
}

// ABCSegment is one category's position in the ABC revenue segmentation.
type ABCSegment struct {
	Category          string
	Revenue           float64
	CumulativeRevenue float64
	CumulativePct     float64
	Segment           string
}

// ABCSegments orders categories by revenue descending and labels them
// A while cumulative revenue stays within 70% of the total, B within
// 90%, and C beyond that.
func (d *Dataset) ABCSegments() []ABCSegment {
	sums := make(map[string]float64)
	var total float64
	for _, s := range d.Sales {
		sums[s.Category] += s.TotalSale
		total += s.TotalSale
	}

	out := make([]ABCSegment, 0, len(sums))
	for category, revenue := range sums {
		out = append(out, ABCSegment{Category: category, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})

	var cumulative float64
	for i := range out {
		cumulative += out[i].Revenue
		out[i].CumulativeRevenue = cumulative
		if total != 0 {
			out[i].CumulativePct = cumulative / total * 100
		}
		switch {
		case out[i].CumulativePct <= 70:
			out[i].Segment = "A"
		case out[i].CumulativePct <= 90:
			out[i].Segment = "B"
		default:
			out[i].Segment = "C"
		}
	}
	return out
}
