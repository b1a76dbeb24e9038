package reconcile

import "time"

// Dimension names one of the two alternate, mutually-consistent ways of
// partitioning work periods within a day. Redistribution runs once per
// dimension and the results must agree.
type Dimension string

const (
	DimensionShift  Dimension = "shift"
	DimensionTurnoG Dimension = "turno_g"
)

// PlannedRow is one unpivoted cell of the top-down planned-orders file:
// the planned volume for one modal on one date inside one geography
// block, tagged with the block's origin.
type PlannedRow struct {
	Origin  string
	Modal   string
	Date    time.Time
	Planned float64
}

// Row is one line of the reconciled forecast: a coarse planned total
// redistributed down to (date, region, modal, logistic region)
// granularity, tagged with the sub-dimension that produced it.
type Row struct {
	Date           time.Time
	Region         string
	BusinessModel  string
	LogisticRegion string
	Dimension      Dimension
	Orders         float64
}

// regionKey aggregates redistribution output for the cross-check.
type regionKey struct {
	LogisticRegion string
	Date           time.Time
}
