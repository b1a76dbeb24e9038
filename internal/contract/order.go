package contract

import (
	"fmt"
	"time"
)

// Column names of the order-history contract, in canonical order.
const (
	ColDeliveryDate   = "delivery_date"
	ColModal          = "modal"
	ColBigRegion      = "big_region"
	ColLogisticRegion = "logistic_region"
	ColShift          = "shift"
	ColTurnoG         = "turno_g"
	ColQuantity       = "quantity"
)

// OrderFields is the fixed field list of the order-history schema. The
// Contract Validator compares uploaded columns against exactly this set:
// no extras, no omissions.
var OrderFields = []string{
	ColDeliveryDate,
	ColModal,
	ColBigRegion,
	ColLogisticRegion,
	ColShift,
	ColTurnoG,
	ColQuantity,
}

// Order is one fulfillment order-history record.
type Order struct {
	DeliveryDate   time.Time `json:"delivery_date" validate:"required"`
	Modal          string    `json:"modal" validate:"required"`
	BigRegion      string    `json:"big_region" validate:"required"`
	LogisticRegion string    `json:"logistic_region" validate:"required"`
	Shift          string    `json:"shift" validate:"required"`
	TurnoG         string    `json:"turno_g" validate:"required"`
	Quantity       int       `json:"quantity" validate:"gt=0"`
}

// Table is a raw tabular dataset as handed over by the upload layer:
// a header row plus string-valued data rows. Parsing the spreadsheet
// bytes into this shape is the ingest package's job; everything after
// that treats Table as the hard contract.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value of the named column in the given data row, or
// the empty string when the row is ragged.
func (t Table) Cell(row int, column string) string {
	for i, c := range t.Columns {
		if c == column {
			if i < len(t.Rows[row]) {
				return t.Rows[row][i]
			}
			return ""
		}
	}
	return ""
}

// dateLayouts are the accepted delivery-date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"02/01/2006",
}

// ParseDate parses a spreadsheet date cell using the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date value %q", s)
}
