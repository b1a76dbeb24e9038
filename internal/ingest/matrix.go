package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"baselinegen/internal/baseline"
	"baselinegen/internal/contract"
)

// SegmentColumnCount is how many leading columns of a baseline matrix
// upload identify the segment; the rest are forecast dates.
const SegmentColumnCount = 5

// ParseMatrix reads a re-uploaded (possibly hand-adjusted) baseline
// matrix back into its wide form. The first five columns are the
// segment key in export order; every later column header is a forecast
// date. Empty cells count as 0.
func ParseMatrix(t contract.Table) (baseline.Matrix, error) {
	if len(t.Columns) <= SegmentColumnCount {
		return baseline.Matrix{}, fmt.Errorf("matrix has no date columns")
	}

	matrix := baseline.Matrix{}
	for _, header := range t.Columns[SegmentColumnCount:] {
		date, err := contract.ParseDate(strings.TrimSpace(header))
		if err != nil {
			return baseline.Matrix{}, fmt.Errorf("date column %q: %w", header, err)
		}
		matrix.Dates = append(matrix.Dates, date)
	}

	for i, row := range t.Rows {
		if len(row) < SegmentColumnCount {
			return baseline.Matrix{}, fmt.Errorf("row %d: too few cells", i+2)
		}
		mr := baseline.MatrixRow{
			Segment: baseline.Segment{
				BigRegion:      strings.TrimSpace(row[0]),
				LogisticRegion: strings.TrimSpace(row[1]),
				Modal:          strings.TrimSpace(row[2]),
				Shift:          strings.TrimSpace(row[3]),
				TurnoG:         strings.TrimSpace(row[4]),
			},
			Cells: make([]int, len(matrix.Dates)),
		}
		for j := range matrix.Dates {
			col := SegmentColumnCount + j
			if col >= len(row) || strings.TrimSpace(row[col]) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return baseline.Matrix{}, fmt.Errorf("row %d column %d: not a number: %q", i+2, col+1, row[col])
			}
			// Hand-adjusted cells may carry fractions; round half to
			// even like every other order count in the pipeline.
			mr.Cells[j] = int(math.RoundToEven(v))
		}
		matrix.Rows = append(matrix.Rows, mr)
	}
	return matrix, nil
}
