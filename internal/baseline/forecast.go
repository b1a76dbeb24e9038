package baseline

import (
	"sort"
	"time"
)

// BuildForecast explodes the per-weekday baseline rows across the
// forecast calendar and reshapes the result to a segment×date matrix.
//
// The join is on weekday: every baseline row matching a given weekday is
// repeated once for every calendar date sharing that weekday: a single
// statistical "Monday" segment becomes a value under every Monday column
// of the horizon. The pivot sums contributions per (segment, date), but
// cardinality is 1:1 after the join; the sum is a safety net. Missing
// combinations fill with 0 and the final rows are sorted by
// logistic region.
func BuildForecast(calendar []CalendarDay, rows []Row) Matrix {
	dates := make([]time.Time, 0, len(calendar))
	for _, d := range calendar {
		dates = append(dates, d.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	dateIndex := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		dateIndex[d] = i
	}

	byWeekday := make(map[int][]time.Time)
	for _, d := range calendar {
		byWeekday[d.Weekday] = append(byWeekday[d.Weekday], d.Date)
	}

	cells := make(map[Segment][]int)
	for _, row := range rows {
		for _, date := range byWeekday[row.Key.Weekday] {
			segCells, ok := cells[row.Key.Segment]
			if !ok {
				segCells = make([]int, len(dates))
				cells[row.Key.Segment] = segCells
			}
			segCells[dateIndex[date]] += row.Orders
		}
	}

	matrix := Matrix{Dates: dates, Rows: make([]MatrixRow, 0, len(cells))}
	for seg, segCells := range cells {
		matrix.Rows = append(matrix.Rows, MatrixRow{Segment: seg, Cells: segCells})
	}
	sortMatrixRows(matrix.Rows)
	return matrix
}

// sortMatrixRows orders matrix rows by logistic region first, with the
// remaining segment fields as deterministic tie breakers.
func sortMatrixRows(rows []MatrixRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Segment, rows[j].Segment
		if a.LogisticRegion != b.LogisticRegion {
			return a.LogisticRegion < b.LogisticRegion
		}
		if a.BigRegion != b.BigRegion {
			return a.BigRegion < b.BigRegion
		}
		if a.Modal != b.Modal {
			return a.Modal < b.Modal
		}
		if a.Shift != b.Shift {
			return a.Shift < b.Shift
		}
		return a.TurnoG < b.TurnoG
	})
}
