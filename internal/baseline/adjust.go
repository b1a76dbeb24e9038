package baseline

import (
	"math"
	"time"
)

// TrailingWindow keeps the enriched rows delivered inside
// [endDate - weeks, endDate] inclusive. Feeds the trailing-mean
// adjustment with recent history only.
func TrailingWindow(rows []Enriched, endDate time.Time, weeks int) []Enriched {
	start := endDate.AddDate(0, 0, -7*weeks)
	window := make([]Enriched, 0, len(rows))
	for _, r := range rows {
		if r.DeliveryDate.Before(start) || r.DeliveryDate.After(endDate) {
			continue
		}
		window = append(window, r)
	}
	return window
}

// AdjustToTrailingMean overrides a projected order count with the
// trailing-window mean of quantity whenever the two deviate by more than
// the threshold in relative terms. Segments missing from the mean table
// take a mean of 0, which leaves their projection untouched.
//
// This override existed in one historical variant of the pipeline and
// was removed in a later one; it is gated behind
// config.ForecastConfig.ThreeWeekAdjust and off by default.
func AdjustToTrailingMean(rows []Row, meanQty []StatRow, threshold float64) []Row {
	means := make(map[GroupKey]float64, len(meanQty))
	for _, s := range meanQty {
		if s.Column == ColQuantity {
			means[s.Key] = s.Value
		}
	}

	adjusted := make([]Row, len(rows))
	for i, row := range rows {
		adjusted[i] = row
		m := means[row.Key]
		if m == 0 {
			continue
		}
		deviation := math.Abs(float64(row.Orders)/m - 1)
		if deviation > threshold {
			adjusted[i].Orders = int(math.RoundToEven(m))
		}
	}
	return adjusted
}
