package baseline

import (
	"fmt"
	"sort"
)

// Statistic selects the central-tendency measure to compute.
type Statistic string

const (
	Median Statistic = "median"
	Mean   Statistic = "mean"
)

// Measured columns accepted by the central-tendency calculator.
const (
	ColGrowth       = "growth_ratio"
	ColQuantity     = "quantity"
	ColPriorWeekQty = "prior_week_quantity"
)

// measureValue resolves a column name to its value on an enriched row.
// Values that were absent upstream have already been defaulted to 0,
// matching the calculator's missing-as-zero rule.
func measureValue(r Enriched, column string) (float64, error) {
	switch column {
	case ColGrowth:
		return r.Growth, nil
	case ColQuantity:
		return float64(r.Quantity), nil
	case ColPriorWeekQty:
		return r.PriorWeekQty, nil
	}
	return 0, fmt.Errorf("unknown measure column %q", column)
}

// GroupStatistics computes the chosen statistic of each requested column
// grouped by the aggregation key (segment + weekday). It returns one
// table per column, unmerged; the median caller merges the growth and
// quantity tables side by side later.
func GroupStatistics(rows []Enriched, columns []string, stat Statistic) ([]StatTable, error) {
	tables := make([]StatTable, 0, len(columns))
	for _, column := range columns {
		grouped := make(map[GroupKey][]float64)
		for _, r := range rows {
			v, err := measureValue(r, column)
			if err != nil {
				return nil, err
			}
			key := GroupKey{Segment: segmentOf(r.Order), Weekday: r.Weekday}
			grouped[key] = append(grouped[key], v)
		}

		values := make(map[GroupKey]float64, len(grouped))
		for key, vs := range grouped {
			switch stat {
			case Median:
				values[key] = median(vs)
			case Mean:
				values[key] = mean(vs)
			default:
				return nil, fmt.Errorf("unknown statistic %q", stat)
			}
		}
		tables = append(tables, StatTable{Column: column, Statistic: stat, Values: values})
	}
	return tables, nil
}

// GroupStatisticsLong computes the same grouped statistics but emits all
// columns concatenated into one long table. The mean path uses this for
// its single-column trailing-window summary, consumed independently of
// the median tables.
func GroupStatisticsLong(rows []Enriched, columns []string, stat Statistic) ([]StatRow, error) {
	tables, err := GroupStatistics(rows, columns, stat)
	if err != nil {
		return nil, err
	}
	var long []StatRow
	for _, t := range tables {
		for key, v := range t.Values {
			long = append(long, StatRow{Key: key, Column: t.Column, Value: v})
		}
	}
	return long, nil
}

func median(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
