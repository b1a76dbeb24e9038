package baseline

import (
	"fmt"
	"math"
	"sort"
)

// GrowthBounds bound the week-over-week growth statistic before it is
// projected onto order volume. The defaults (-0.1, 1.3) keep implausible
// swings out of the forecast; they are operational tuning, configured in
// config.ForecastConfig.
type GrowthBounds struct {
	Min float64
	Max float64
}

// Clip bounds a growth value to the configured range.
func (b GrowthBounds) Clip(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// ClipAndMerge takes the two median tables produced by GroupStatistics
// (growth ratio and quantity, in either order), clips the growth
// statistic, and merges the two on the aggregation key. The quantity
// table is the left side of the join so segments lacking a growth value
// still keep their quantity; an absent growth is treated as no growth,
// not as a growth of zero being measured; the clip runs before the
// merge so bounds never apply to the absent case.
//
// projected orders = round(quantity * (1 + growth)), half to even.
func ClipAndMerge(tables []StatTable, bounds GrowthBounds) ([]Row, error) {
	if len(tables) != 2 {
		return nil, fmt.Errorf("expected 2 median tables (growth, quantity), got %d", len(tables))
	}

	var growthTable, qtyTable *StatTable
	for i := range tables {
		switch tables[i].Column {
		case ColGrowth:
			growthTable = &tables[i]
		case ColQuantity:
			qtyTable = &tables[i]
		}
	}
	if growthTable == nil || qtyTable == nil {
		return nil, fmt.Errorf("median tables must cover %q and %q", ColGrowth, ColQuantity)
	}

	clipped := make(map[GroupKey]float64, len(growthTable.Values))
	for key, v := range growthTable.Values {
		clipped[key] = bounds.Clip(v)
	}

	rows := make([]Row, 0, len(qtyTable.Values))
	for key, qty := range qtyTable.Values {
		row := Row{Key: key, Quantity: qty}
		if g, ok := clipped[key]; ok {
			row.Growth = g
			row.HasGrowth = true
		}
		row.Orders = int(math.RoundToEven(qty * (1 + row.Growth)))
		rows = append(rows, row)
	}
	sortRows(rows)
	return rows, nil
}

// sortRows orders baseline rows deterministically by their full key.
func sortRows(rows []Row) {
	less := func(a, b GroupKey) bool {
		if a.Modal != b.Modal {
			return a.Modal < b.Modal
		}
		if a.BigRegion != b.BigRegion {
			return a.BigRegion < b.BigRegion
		}
		if a.LogisticRegion != b.LogisticRegion {
			return a.LogisticRegion < b.LogisticRegion
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		if a.TurnoG != b.TurnoG {
			return a.TurnoG < b.TurnoG
		}
		return a.Weekday < b.Weekday
	}
	sort.Slice(rows, func(i, j int) bool { return less(rows[i].Key, rows[j].Key) })
}
