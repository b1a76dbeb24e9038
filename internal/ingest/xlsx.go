// Package ingest reads uploaded spreadsheets into the in-memory table
// shapes the pipeline contracts are written against. Spreadsheet
// mechanics stop here; everything downstream sees tables.
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"baselinegen/internal/contract"
)

// ReadTable reads the first sheet of an xlsx stream into a contract
// table: first row is the header, every later row is data. Ragged rows
// are padded to the header width so column lookups stay positional.
func ReadTable(r io.Reader) (contract.Table, error) {
	grid, err := ReadGrid(r)
	if err != nil {
		return contract.Table{}, err
	}
	if len(grid) == 0 {
		return contract.Table{}, fmt.Errorf("spreadsheet has no rows")
	}

	columns := make([]string, len(grid[0]))
	for i, c := range grid[0] {
		columns[i] = strings.TrimSpace(c)
	}

	rows := make([][]string, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := make([]string, len(columns))
		copy(row, raw)
		rows = append(rows, row)
	}

	slog.Debug("read spreadsheet table",
		slog.Int("columns", len(columns)),
		slog.Int("rows", len(rows)))

	return contract.Table{Columns: columns, Rows: rows}, nil
}

// ReadGrid reads the first sheet of an xlsx stream as a raw cell grid,
// preserving blank rows. The planned-orders parser needs the blanks to
// find its block boundaries.
func ReadGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
