package contract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RowError is a single row-level validation failure. Line is the 1-based
// spreadsheet line of the offending row (data index + 2: one for the
// header row, one for 0-based indexing), so the message points at the
// row the user sees in their spreadsheet tool.
type RowError struct {
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (e RowError) Error() string {
	return fmt.Sprintf("row %d: field %q: %s", e.Line, e.Field, e.Reason)
}

// validate is the shared struct validator instance. validator.Validate
// caches struct metadata, so a single instance is the intended usage.
var validate = validator.New()

// ValidateColumns checks the uploaded table's column set against the
// order schema. Columns outside the schema fail the whole upload with a
// single descriptive error before any row is inspected.
func ValidateColumns(t Table) error {
	allowed := make(map[string]bool, len(OrderFields))
	for _, f := range OrderFields {
		allowed[f] = true
	}

	var extra []string
	for _, c := range t.Columns {
		if !allowed[c] {
			extra = append(extra, c)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("unexpected columns in upload: %s", strings.Join(extra, ", "))
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		seen[c] = true
	}
	var missing []string
	for _, f := range OrderFields {
		if !seen[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns in upload: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateRows checks every data row independently against the order
// schema and accumulates failures instead of aborting; the caller gets
// the full itemized list in one pass. Orders are returned for the rows
// that parsed cleanly, but a non-empty error list gates all downstream
// stages.
func ValidateRows(t Table) ([]Order, []RowError) {
	orders := make([]Order, 0, len(t.Rows))
	var errs []RowError

	for i := range t.Rows {
		line := i + 2
		order, rowErrs := parseRow(t, i, line)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		orders = append(orders, order)
	}
	return orders, errs
}

func parseRow(t Table, row, line int) (Order, []RowError) {
	var order Order
	var errs []RowError

	date, err := ParseDate(t.Cell(row, ColDeliveryDate))
	if err != nil {
		errs = append(errs, RowError{Line: line, Field: ColDeliveryDate, Reason: err.Error()})
	} else {
		order.DeliveryDate = date
	}

	order.Modal = strings.TrimSpace(t.Cell(row, ColModal))
	order.BigRegion = strings.TrimSpace(t.Cell(row, ColBigRegion))
	order.LogisticRegion = strings.TrimSpace(t.Cell(row, ColLogisticRegion))
	order.Shift = strings.TrimSpace(t.Cell(row, ColShift))
	order.TurnoG = strings.TrimSpace(t.Cell(row, ColTurnoG))

	qtyCell := strings.TrimSpace(t.Cell(row, ColQuantity))
	qty, err := strconv.Atoi(qtyCell)
	if err != nil {
		errs = append(errs, RowError{Line: line, Field: ColQuantity, Reason: fmt.Sprintf("not an integer: %q", qtyCell)})
	} else {
		order.Quantity = qty
	}

	if len(errs) > 0 {
		return order, errs
	}

	if err := validate.Struct(order); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, RowError{Line: line, Field: "", Reason: err.Error()})
			return order, errs
		}
		for _, fe := range verrs {
			errs = append(errs, RowError{
				Line:   line,
				Field:  fieldColumn(fe.StructField()),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			})
		}
	}
	return order, errs
}

// fieldColumn maps an Order struct field name back to its column name.
func fieldColumn(field string) string {
	switch field {
	case "DeliveryDate":
		return ColDeliveryDate
	case "Modal":
		return ColModal
	case "BigRegion":
		return ColBigRegion
	case "LogisticRegion":
		return ColLogisticRegion
	case "Shift":
		return ColShift
	case "TurnoG":
		return ColTurnoG
	case "Quantity":
		return ColQuantity
	}
	return field
}

// ValidateRowCount checks that an upload carries exactly the expected
// number of data rows. Used for the top-down planned-orders file, whose
// four-block layout has a fixed row count.
func ValidateRowCount(rows int, want int) error {
	if rows != want {
		return fmt.Errorf("expected exactly %d data rows, got %d", want, rows)
	}
	return nil
}

// ValidateColumnSubset checks that the first n columns of an adjusted
// baseline re-upload all belong to the order schema's field names.
func ValidateColumnSubset(columns []string, n int) error {
	allowed := make(map[string]bool, len(OrderFields))
	for _, f := range OrderFields {
		allowed[f] = true
	}
	if len(columns) < n {
		return fmt.Errorf("expected at least %d columns, got %d", n, len(columns))
	}
	var bad []string
	for _, c := range columns[:n] {
		if !allowed[c] {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("columns outside the order schema: %s", strings.Join(bad, ", "))
	}
	return nil
}
