package baseline

import (
	"math"
	"sort"
	"time"

	"baselinegen/internal/contract"
)

// FilterRange keeps only orders delivered inside [start, end] inclusive.
func FilterRange(orders []contract.Order, start, end time.Time) []contract.Order {
	filtered := make([]contract.Order, 0, len(orders))
	for _, o := range orders {
		if o.DeliveryDate.Before(start) || o.DeliveryDate.After(end) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// Enrich derives the calendar features and the week-over-week growth for
// each order, then drops the most recent (incomplete) week.
//
// The lag is positional: after sorting, the prior-week quantity of the
// Nth row inside a segment group is the quantity of the (N-7)th row of
// that same group. This relies on the history carrying one row per
// calendar day per segment, which the sort order guarantees to line up
// as same-weekday pairs one week apart.
func Enrich(orders []contract.Order) []Enriched {
	rows := make([]Enriched, len(orders))
	for i, o := range orders {
		_, week := o.DeliveryDate.ISOWeek()
		year := o.DeliveryDate.Year()
		rows[i] = Enriched{
			Order:    o,
			Year:     year,
			Weekday:  Weekday(o.DeliveryDate),
			Month:    int(o.DeliveryDate.Month()),
			ISOWeek:  week,
			// Composite week key from the calendar year, not the ISO
			// year: a late-December date in ISO week 1 of the next year
			// must sort below the December weeks so the max-week drop
			// removes the in-progress week, not the year's last full one.
			YearWeek: year*100 + week,
		}
	}

	// The ordering is required before the lag computation: the shift is
	// a positional 7-row lookback within each segment group.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.DeliveryDate.Equal(b.DeliveryDate) {
			return a.DeliveryDate.Before(b.DeliveryDate)
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.ISOWeek != b.ISOWeek {
			return a.ISOWeek < b.ISOWeek
		}
		if a.Modal != b.Modal {
			return a.Modal < b.Modal
		}
		if a.LogisticRegion != b.LogisticRegion {
			return a.LogisticRegion < b.LogisticRegion
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.TurnoG < b.TurnoG
	})

	// Positional 7-row shift within each segment group, in sorted order.
	groupRows := make(map[Segment][]int)
	for i := range rows {
		seg := segmentOf(rows[i].Order)
		positions := groupRows[seg]
		if len(positions) >= 7 {
			prior := rows[positions[len(positions)-7]]
			rows[i].PriorWeekQty = float64(prior.Quantity)
			rows[i].HasPrior = true
		}
		groupRows[seg] = append(positions, i)
	}

	maxYearWeek := 0
	for i := range rows {
		if rows[i].HasPrior && rows[i].PriorWeekQty != 0 {
			rows[i].Growth = round4(float64(rows[i].Quantity)/rows[i].PriorWeekQty - 1)
		}
		if rows[i].YearWeek > maxYearWeek {
			maxYearWeek = rows[i].YearWeek
		}
	}

	// The most recent week is incomplete and unreliable as a training
	// sample; exclude it from everything downstream.
	kept := make([]Enriched, 0, len(rows))
	for _, r := range rows {
		if r.YearWeek >= maxYearWeek {
			continue
		}
		if !r.HasPrior {
			r.PriorWeekQty = 0
		}
		kept = append(kept, r)
	}
	return kept
}

func segmentOf(o contract.Order) Segment {
	return Segment{
		Modal:          o.Modal,
		BigRegion:      o.BigRegion,
		LogisticRegion: o.LogisticRegion,
		Shift:          o.Shift,
		TurnoG:         o.TurnoG,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
