// Package exporter writes pipeline artifacts to spreadsheet and CSV
// form for download.
package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"baselinegen/internal/baseline"
	"baselinegen/internal/reconcile"
)

const sheetName = "Sheet1"

// MatrixHeader is the segment column order of an exported baseline
// matrix. The adjusted-baseline re-upload contract checks its first
// five columns against the order schema, so this order is load-bearing.
var MatrixHeader = []string{"big_region", "logistic_region", "modal", "shift", "turno_g"}

// WriteMatrixXLSX writes the forecast matrix as a wide spreadsheet: one
// row per segment, one column per forecast date.
func WriteMatrixXLSX(w io.Writer, m baseline.Matrix) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, 0, len(MatrixHeader)+len(m.Dates))
	for _, h := range MatrixHeader {
		header = append(header, h)
	}
	for _, d := range m.Dates {
		header = append(header, d.Format("2006-01-02"))
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range m.Rows {
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, row.BigRegion, row.LogisticRegion, row.Modal, row.Shift, row.TurnoG)
		for _, v := range row.Cells {
			cells = append(cells, v)
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// WriteReconciledXLSX writes the reconciled forecast in long form.
func WriteReconciledXLSX(w io.Writer, rows []reconcile.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"date", "region", "business_model", "logistic_region", "breakdown_dimension", "orders"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cells := []interface{}{
			row.Date.Format("2006-01-02"),
			row.Region,
			row.BusinessModel,
			row.LogisticRegion,
			string(row.Dimension),
			row.Orders,
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
