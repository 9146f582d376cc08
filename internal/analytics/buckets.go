//-------------------------------------------------------------------------
//
// salescope: Retail Sales Analytics
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package analytics

import "sort"

// Shift names in reporting order.
var shiftOrder = []string{"Morning", "Afternoon", "Evening"}

// ShiftCount is the number of sales in one time-of-day shift.
type ShiftCount struct {
	Shift  string
	Orders int
}

// shiftOf buckets an hour of day: before noon is Morning, noon through
// 16:59 is Afternoon, everything else Evening.
func shiftOf(hour int) string {
	switch {
	case hour < 12:
		return "Morning"
	case hour <= 16:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// SalesByShift counts sales per time-of-day shift. Shifts are reported
// in day order; shifts with no sales are omitted.
func (d *Dataset) SalesByShift() []ShiftCount {
	counts := make(map[string]int, len(shiftOrder))
	for _, s := range d.Sales {
		counts[shiftOf(s.SaleTime.Hour())]++
	}

	out := make([]ShiftCount, 0, len(shiftOrder))
	for _, shift := range shiftOrder {
		if n, ok := counts[shift]; ok {
			out = append(out, ShiftCount{Shift: shift, Orders: n})
		}
	}
	return out
}

// AgeBandStats aggregates sales for one customer age band.
type AgeBandStats struct {
	Band            string
	TotalSales      float64
	UniqueCustomers int
	AverageSale     float64
}

// ageBandOf maps an age to its band label. A null age is Unknown; the
// numeric bands cover every integer, so Unknown is reachable only
// through nulls.
func ageBandOf(age *int) string {
	if age == nil {
		return "Unknown"
	}
	switch {
	case *age < 18:
		return "<18"
	case *age <= 24:
		return "18-24"
	case *age <= 34:
		return "25-34"
	case *age <= 44:
		return "35-44"
	case *age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}

// AgeBands aggregates revenue, distinct customers and average spend per
// transaction for each customer age band, ordered by band label.
func (d *Dataset) AgeBands() []AgeBandStats {
	type agg struct {
		total     float64
		count     int
		customers map[int64]struct{}
	}
	bands := make(map[string]*agg)
	for _, s := range d.Sales {
		band := ageBandOf(s.Age)
		a, ok := bands[band]
		if !ok {
			a = &agg{customers: make(map[int64]struct{})}
			bands[band] = a
		}
		a.total += s.TotalSale
		a.count++
		if s.CustomerID != nil {
			a.customers[*s.CustomerID] = struct{}{}
		}
	}

	labels := make([]string, 0, len(bands))
	for band := range bands {
		labels = append(labels, band)
	}
	sort.Strings(labels)

	out := make([]AgeBandStats, 0, len(labels))
	for _, band := range labels {
		a := bands[band]
		out = append(out, AgeBandStats{
			Band:            band,
			TotalSales:      a.total,
			UniqueCustomers: len(a.customers),
			AverageSale:     a.total / float64(a.count),
		})
	}
	return out
}
