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

// CustomerTotal is one customer's summed revenue.
type CustomerTotal struct {
	CustomerID int64
	TotalSales float64
}

// TopCustomers returns up to limit customers with the highest summed
// revenue, descending. Ties keep the order in which the customers first
// appear in the dataset. Sales without a customer id are skipped.
func (d *Dataset) TopCustomers(limit int) []CustomerTotal {
	totals := make(map[int64]float64)
	var order []int64
	for _, s := range d.Sales {
		if s.CustomerID == nil {
			continue
		}
		id := *s.CustomerID
		if _, seen := totals[id]; !seen {
			order = append(order, id)
		}
		totals[id] += s.TotalSale
	}

	out := make([]CustomerTotal, 0, len(order))
	for _, id := range order {
		out = append(out, CustomerTotal{CustomerID: id, TotalSales: totals[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales > out[j].TotalSales
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RFMScore is one customer's recency/frequency/monetary metrics with
// quartile scores in 1..4, higher meaning better.
type RFMScore struct {
	CustomerID     int64
	RecencyDays    int
	Frequency      int
	Monetary       float64
	RecencyScore   int
	FrequencyScore int
	MonetaryScore  int
}

// RFMSegmentation scores customers by recency (days between the
// reference date and their latest sale), frequency (distinct
// transactions) and monetary value (summed revenue). Each metric is cut
// into NTILE(4) quartiles; recency is ordered descending so that the
// most recent customers get the highest score. Output is ordered by
// frequency score, monetary score, then recency score, all descending.
func (d *Dataset) RFMSegmentation(reference time.Time) []RFMScore {
	type metrics struct {
		latest       time.Time
		transactions map[int64]struct{}
		monetary     float64
	}
	byCustomer := make(map[int64]*metrics)
	for _, s := range d.Sales {
		if s.CustomerID == nil {
			continue
		}
		m, ok := byCustomer[*s.CustomerID]
		if !ok {
			m = &metrics{transactions: make(map[int64]struct{})}
			byCustomer[*s.CustomerID] = m
		}
		if s.SaleDate.After(m.latest) {
			m.latest = s.SaleDate
		}
		m.transactions[s.TransactionID] = struct{}{}
		m.monetary += s.TotalSale
	}

	out := make([]RFMScore, 0, len(byCustomer))
	for id, m := range byCustomer {
		out = append(out, RFMScore{
			CustomerID:  id,
			RecencyDays: int(reference.Sub(m.latest).Hours() / 24),
			Frequency:   len(m.transactions),
			Monetary:    m.monetary,
		})
	}

	// Recency descending: the least recent customer lands in the first
	// quartile (score 1), the most recent in the last (score 4).
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecencyDays != out[j].RecencyDays {
			return out[i].RecencyDays > out[j].RecencyDays
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	for i := range out {
		out[i].RecencyScore = ntile(4, len(out), i)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency < out[j].Frequency
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	for i := range out {
		out[i].FrequencyScore = ntile(4, len(out), i)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Monetary != out[j].Monetary {
			return out[i].Monetary < out[j].Monetary
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	for i := range out {
		out[i].MonetaryScore = ntile(4, len(out), i)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FrequencyScore != b.FrequencyScore {
			return a.FrequencyScore > b.FrequencyScore
		}
		if a.MonetaryScore != b.MonetaryScore {
			return a.MonetaryScore > b.MonetaryScore
		}
		if a.RecencyScore != b.RecencyScore {
			return a.RecencyScore > b.RecencyScore
		}
		return a.CustomerID < b.CustomerID
	})
	return out
}

// ntile assigns row i (0-based) of count ordered rows to one of n
// buckets numbered 1..n. Bucket sizes differ by at most one; the
// earlier buckets take the extra row, matching SQL NTILE.
func ntile(n, count, i int) int {
	base := count / n
	rem := count % n
	head := rem * (base + 1)
	if i < head {
		return i/(base+1) + 1
	}
	return rem + (i-head)/base + 1
}

// CategoryPair counts customers who bought from both of two categories.
type CategoryPair struct {
	Category1 string
	Category2 string
	Customers int
}

// CategoryCoPurchase counts, for every unordered category pair, the
// distinct customers with at least one purchase in both, and returns the
// top limit pairs by count descending. Pairs are enumerated from each
// customer's category set rather than by a pairwise join over sales.
func (d *Dataset) CategoryCoPurchase(limit int) []CategoryPair {
	categories := make(map[int64]map[string]struct{})
	for _, s := range d.Sales {
		if s.CustomerID == nil {
			continue
		}
		set, ok := categories[*s.CustomerID]
		if !ok {
			set = make(map[string]struct{})
			categories[*s.CustomerID] = set
		}
		set[s.Category] = struct{}{}
	}

	type pair struct{ a, b string }
	counts := make(map[pair]int)
	for _, set := range categories {
		names := make([]string, 0, len(set))
		for c := range set {
			names = append(names, c)
		}
		sort.Strings(names)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				counts[pair{names[i], names[j]}]++
			}
		}
	}

	out := make([]CategoryPair, 0, len(counts))
	for p, n := range counts {
		out = append(out, CategoryPair{Category1: p.a, Category2: p.b, Customers: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		if out[i].Category1 != out[j].Category1 {
			return out[i].Category1 < out[j].Category1
		}
		return out[i].Category2 < out[j].Category2
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CohortCell counts the active customers of one cohort in one month.
type CohortCell struct {
	CohortMonth     string
	ActivityMonth   string
	ActiveCustomers int
}

// CohortRetention groups customers by the month of their first purchase
// and counts, for every month in which any of them purchased again, the
// distinct active customers. Ordered by cohort month then activity month.
func (d *Dataset) CohortRetention() []CohortCell {
	cohorts := make(map[int64]string)
	activity := make(map[int64]map[string]struct{})
	for _, s := range d.Sales {
		if s.CustomerID == nil {
			continue
		}
		id := *s.CustomerID
		m := monthKey(s.SaleDate)
		if first, ok := cohorts[id]; !ok || m < first {
			cohorts[id] = m
		}
		months, ok := activity[id]
		if !ok {
			months = make(map[string]struct{})
			activity[id] = months
		}
		months[m] = struct{}{}
	}

	counts := make(map[[2]string]int)
	for id, months := range activity {
		cohort := cohorts[id]
		for m := range months {
			counts[[2]string{cohort, m}]++
		}
	}

	out := make([]CohortCell, 0, len(counts))
	for k, n := range counts {
		out = append(out, CohortCell{
			CohortMonth:     k[0],
			ActivityMonth:   k[1],
			ActiveCustomers: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CohortMonth != out[j].CohortMonth {
			return out[i].CohortMonth < out[j].CohortMonth
		}
		return out[i].ActivityMonth < out[j].ActivityMonth
	})
	return out
}
