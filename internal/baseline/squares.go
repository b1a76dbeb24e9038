package baseline

import "time"

// AllowedSquares collects the (modal, logistic_region) pairs with at
// least one order delivered in the trailing window ending at the cutoff
// date, inclusive on both ends. A pair whose only activity is older than
// the window has gone operationally dark and must not be forecast.
func AllowedSquares(rows []Enriched, endDate time.Time, windowWeeks int) map[Square]bool {
	start := endDate.AddDate(0, 0, -7*windowWeeks)
	allowed := make(map[Square]bool)
	for _, r := range rows {
		if r.DeliveryDate.Before(start) || r.DeliveryDate.After(endDate) {
			continue
		}
		allowed[Square{Modal: r.Modal, LogisticRegion: r.LogisticRegion}] = true
	}
	return allowed
}

// FilterAllowed inner-joins the forecast matrix against the allowed
// squares: forecast rows for pairs with no recent activity are dropped
// entirely, even though they were statistically well-formed.
func FilterAllowed(m Matrix, allowed map[Square]bool) Matrix {
	kept := make([]MatrixRow, 0, len(m.Rows))
	for _, row := range m.Rows {
		if allowed[Square{Modal: row.Modal, LogisticRegion: row.LogisticRegion}] {
			kept = append(kept, row)
		}
	}
	return Matrix{Dates: m.Dates, Rows: kept}
}
