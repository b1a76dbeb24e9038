package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"baselinegen/internal/contract"
)

// ParsePlanned unpivots the top-down planned-orders spreadsheet into
// long rows. The sheet stacks one geography block per origin, separated
// by fully blank rows: the aggregate-minus-named-regions block, the
// national total block, then one block per named region. origins lists
// the tags in that file order.
//
// The first block uses its first row as header; every later block
// carries a label row first and uses its second row as header. That
// split-header convention comes from the file producer and must be
// reproduced exactly.
func ParsePlanned(grid [][]string, origins []string) ([]PlannedRow, error) {
	blocks := splitBlocks(grid)
	if len(blocks) != len(origins) {
		return nil, fmt.Errorf("expected %d geography blocks, got %d", len(origins), len(blocks))
	}

	var rows []PlannedRow
	for i, block := range blocks {
		header, data, err := blockLayout(block, i)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", origins[i], err)
		}
		blockRows, err := unpivotBlock(origins[i], header, data)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", origins[i], err)
		}
		rows = append(rows, blockRows...)
	}
	return rows, nil
}

// splitBlocks partitions the grid on fully blank rows.
func splitBlocks(grid [][]string) [][][]string {
	var blocks [][][]string
	var current [][]string
	for _, row := range grid {
		if blankRow(row) {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// blockLayout picks the header and data rows. Block 0 has no label row.
func blockLayout(block [][]string, index int) (header []string, data [][]string, err error) {
	if index == 0 {
		if len(block) < 2 {
			return nil, nil, fmt.Errorf("too few rows: %d", len(block))
		}
		return block[0], block[1:], nil
	}
	if len(block) < 3 {
		return nil, nil, fmt.Errorf("too few rows: %d", len(block))
	}
	return block[1], block[2:], nil
}

// unpivotBlock turns a wide block (modal rows × date columns) into long
// (origin, modal, date, planned) rows. Empty cells carry no planned
// value and emit nothing.
func unpivotBlock(origin string, header []string, data [][]string) ([]PlannedRow, error) {
	if len(header) < 2 {
		return nil, fmt.Errorf("header has no date columns")
	}

	var rows []PlannedRow
	for _, dataRow := range data {
		if len(dataRow) == 0 || strings.TrimSpace(dataRow[0]) == "" {
			continue
		}
		modal := strings.TrimSpace(dataRow[0])
		for j := 1; j < len(header); j++ {
			dateCell := strings.TrimSpace(header[j])
			if dateCell == "" {
				continue
			}
			date, err := contract.ParseDate(dateCell)
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", j, err)
			}
			if j >= len(dataRow) {
				continue
			}
			valueCell := strings.TrimSpace(dataRow[j])
			if valueCell == "" {
				continue
			}
			value, err := strconv.ParseFloat(valueCell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %q column %d: not a number: %q", modal, j, valueCell)
			}
			rows = append(rows, PlannedRow{Origin: origin, Modal: modal, Date: date, Planned: value})
		}
	}
	return rows, nil
}
