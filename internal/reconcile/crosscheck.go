package reconcile

import (
	"fmt"
	"math"

	"baselinegen/internal/baseline"
	"baselinegen/internal/config"
)

// ErrInconsistent is returned when the two redistribution passes
// disagree. It is fatal: no merged output exists alongside it.
type ErrInconsistent struct {
	Mismatches int
	TotalDiff  float64
}

func (e *ErrInconsistent) Error() string {
	return fmt.Sprintf("redistribution passes disagree: %d (logistic_region, date) sums differ, rounded total difference %.5f",
		e.Mismatches, e.TotalDiff)
}

// CrossCheck verifies that redistributing by shift and by turno_g
// produced numerically identical totals per (logistic_region, date).
// Each per-key difference is rounded to 5 decimal places and the
// rounded differences must sum to exactly zero across all keys.
func CrossCheck(byShift, byTurnoG []Row) error {
	sumShift := regionSums(byShift)
	sumTurnoG := regionSums(byTurnoG)

	keys := make(map[regionKey]bool, len(sumShift)+len(sumTurnoG))
	for k := range sumShift {
		keys[k] = true
	}
	for k := range sumTurnoG {
		keys[k] = true
	}

	mismatches := 0
	totalDiff := 0.0
	for k := range keys {
		diff := round5(sumShift[k] - sumTurnoG[k])
		if diff != 0 {
			mismatches++
		}
		totalDiff += diff
	}
	if totalDiff != 0 {
		return &ErrInconsistent{Mismatches: mismatches, TotalDiff: totalDiff}
	}
	return nil
}

func regionSums(rows []Row) map[regionKey]float64 {
	sums := make(map[regionKey]float64)
	for _, r := range rows {
		sums[regionKey{LogisticRegion: r.LogisticRegion, Date: r.Date}] += r.Orders
	}
	return sums
}

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}

// Reconcile runs both redistribution passes over the long-form baseline,
// cross-validates them and unions the results. On any inconsistency it
// fails hard with no partial output.
func Reconcile(long []baseline.LongRow, planned []PlannedRow, cfg config.ReconcileConfig) ([]Row, error) {
	byShift := Redistribute(long, planned, DimensionShift, cfg)
	byTurnoG := Redistribute(long, planned, DimensionTurnoG, cfg)

	if err := CrossCheck(byShift, byTurnoG); err != nil {
		return nil, err
	}

	merged := make([]Row, 0, len(byShift)+len(byTurnoG))
	merged = append(merged, byShift...)
	merged = append(merged, byTurnoG...)
	sortRows(merged)
	return merged, nil
}
