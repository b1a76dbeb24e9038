package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"baselinegen/internal/baseline"
	"baselinegen/internal/reconcile"
)

// WriteMatrixCSV writes the forecast matrix as CSV with a UTF-8 BOM so
// spreadsheet tools pick up the encoding.
func WriteMatrixCSV(w io.Writer, m baseline.Matrix) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, len(MatrixHeader)+len(m.Dates))
	header = append(header, MatrixHeader...)
	for _, d := range m.Dates {
		header = append(header, d.Format("2006-01-02"))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range m.Rows {
		record := make([]string, 0, len(header))
		record = append(record, row.BigRegion, row.LogisticRegion, row.Modal, row.Shift, row.TurnoG)
		for _, v := range row.Cells {
			record = append(record, strconv.Itoa(v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteReconciledCSV writes the reconciled forecast in long CSV form.
func WriteReconciledCSV(w io.Writer, rows []reconcile.Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "region", "business_model", "logistic_region", "breakdown_dimension", "orders"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Region,
			row.BusinessModel,
			row.LogisticRegion,
			string(row.Dimension),
			strconv.FormatFloat(row.Orders, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
