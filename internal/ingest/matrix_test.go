package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselinegen/internal/contract"
)

func matrixTable() contract.Table {
	return contract.Table{
		Columns: []string{"big_region", "logistic_region", "modal", "shift", "turno_g", "2024-02-01", "2024-02-02"},
		Rows: [][]string{
			{"SAO_PAULO", "SP_CAPITAL", "EXPRESS", "DAY", "T1", "10", ""},
			{"MINAS", "MG_BH", "STANDARD", "NIGHT", "T2", "7", "12"},
		},
	}
}

func TestParseMatrix(t *testing.T) {
	m, err := ParseMatrix(matrixTable())
	require.NoError(t, err)

	require.Len(t, m.Dates, 2)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.Dates[0])
	assert.Equal(t, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), m.Dates[1])

	require.Len(t, m.Rows, 2)
	first := m.Rows[0]
	assert.Equal(t, "SAO_PAULO", first.BigRegion)
	assert.Equal(t, "SP_CAPITAL", first.LogisticRegion)
	assert.Equal(t, "EXPRESS", first.Modal)
	assert.Equal(t, "DAY", first.Shift)
	assert.Equal(t, "T1", first.TurnoG)
	// The empty cell reads as zero.
	assert.Equal(t, []int{10, 0}, first.Cells)
	assert.Equal(t, []int{7, 12}, m.Rows[1].Cells)
}

func TestParseMatrixRoundsFractionalCells(t *testing.T) {
	table := matrixTable()
	table.Rows[0][5] = "10.9"
	table.Rows[1][5] = "7.5" // half to even
	table.Rows[1][6] = "12.5"

	m, err := ParseMatrix(table)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 0}, m.Rows[0].Cells)
	assert.Equal(t, []int{8, 12}, m.Rows[1].Cells)
}

func TestParseMatrixRequiresDateColumns(t *testing.T) {
	table := matrixTable()
	table.Columns = table.Columns[:SegmentColumnCount]
	_, err := ParseMatrix(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date columns")
}

func TestParseMatrixRejectsBadDateHeader(t *testing.T) {
	table := matrixTable()
	table.Columns[5] = "first of February"
	_, err := ParseMatrix(table)
	require.Error(t, err)
}

func TestParseMatrixRejectsBadCell(t *testing.T) {
	table := matrixTable()
	table.Rows[1][6] = "a dozen"
	_, err := ParseMatrix(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a number")
}

func TestParseMatrixRejectsShortRow(t *testing.T) {
	table := matrixTable()
	table.Rows[0] = table.Rows[0][:3]
	_, err := ParseMatrix(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too few cells")
}
