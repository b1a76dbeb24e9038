package baseline

import (
	"sort"
	"time"
)

// Melt unpivots a forecast matrix to long form: one row per
// (segment, date) cell observed.
func Melt(m Matrix) []LongRow {
	long := make([]LongRow, 0, len(m.Rows)*len(m.Dates))
	for _, row := range m.Rows {
		for i, date := range m.Dates {
			long = append(long, LongRow{
				Segment: row.Segment,
				Date:    date,
				Orders:  float64(row.Cells[i]),
			})
		}
	}
	return long
}

// Pivot rebuilds a wide matrix from long rows, summing duplicate
// (segment, date) contributions and filling missing combinations with 0.
// Melting a matrix and pivoting it back reproduces the original values.
func Pivot(long []LongRow) Matrix {
	dateSet := make(map[time.Time]bool)
	for _, r := range long {
		dateSet[r.Date] = true
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	dateIndex := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		dateIndex[d] = i
	}

	cells := make(map[Segment][]int)
	for _, r := range long {
		segCells, ok := cells[r.Segment]
		if !ok {
			segCells = make([]int, len(dates))
			cells[r.Segment] = segCells
		}
		segCells[dateIndex[r.Date]] += int(r.Orders)
	}

	matrix := Matrix{Dates: dates, Rows: make([]MatrixRow, 0, len(cells))}
	for seg, segCells := range cells {
		matrix.Rows = append(matrix.Rows, MatrixRow{Segment: seg, Cells: segCells})
	}
	sortMatrixRows(matrix.Rows)
	return matrix
}
