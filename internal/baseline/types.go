package baseline

import (
	"time"

	"baselinegen/internal/contract"
)

// Segment identifies one operational slice of the business: delivery
// modal, macro region, logistic region and the two work-period
// partitions. Every statistic in the pipeline is grouped by Segment
// plus weekday.
type Segment struct {
	Modal          string
	BigRegion      string
	LogisticRegion string
	Shift          string
	TurnoG         string
}

// GroupKey is the canonical aggregation key: a Segment plus the weekday
// (Monday=0..Sunday=6).
type GroupKey struct {
	Segment
	Weekday int
}

// Enriched is an order record plus the derived calendar features and
// the week-over-week growth computed by Enrich. Produced once per run;
// immutable downstream.
type Enriched struct {
	contract.Order

	Year     int
	Weekday  int
	Month    int
	ISOWeek  int
	YearWeek int

	// PriorWeekQty is the quantity of the same segment, same weekday,
	// seven days earlier. HasPrior is false for the first seven rows of
	// a segment group, which have nothing to look back at.
	PriorWeekQty float64
	HasPrior     bool

	// Growth is quantity/prior - 1 rounded to 4 decimals, 0 when there
	// is no prior-week value.
	Growth float64
}

// StatTable maps each group key to one statistic of one measured
// column. One instance per (column, statistic) pair.
type StatTable struct {
	Column    string
	Statistic Statistic
	Values    map[GroupKey]float64
}

// StatRow is the long form of a statistic: one row per (key, column).
// The mean path emits its columns concatenated in this shape.
type StatRow struct {
	Key    GroupKey
	Column string
	Value  float64
}

// Row is a projected order volume for one segment/weekday combination,
// before any calendar date is attached.
type Row struct {
	Key       GroupKey
	Quantity  float64
	Growth    float64
	HasGrowth bool
	Orders    int
}

// CalendarDay is one date of the forecast horizon tagged with its
// weekday for the join against per-weekday baseline rows.
type CalendarDay struct {
	Date    time.Time
	Weekday int
}

// LongRow is the long (melted) form of a forecast matrix cell.
type LongRow struct {
	Segment
	Date   time.Time
	Orders float64
}

// Matrix is the wide forecast: one row per segment, one column per
// forecast date, integer order counts.
type Matrix struct {
	Dates []time.Time
	Rows  []MatrixRow
}

// MatrixRow is one segment's forecast across all dates of the horizon.
// Cells is indexed in Matrix.Dates order.
type MatrixRow struct {
	Segment
	Cells []int
}

// Square is a (modal, logistic_region) pair; the allowed-squares filter
// keeps only squares with recent operational activity.
type Square struct {
	Modal          string
	LogisticRegion string
}

// Weekday returns the Monday=0..Sunday=6 weekday of a date.
func Weekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
