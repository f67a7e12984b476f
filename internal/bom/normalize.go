// Package bom implements the merge pipeline for spreadsheet Bills of
// Materials: per-file normalization, grouped aggregation, and export
// back to a single workbook.
package bom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bommerge/internal/domain"
)

// Required header columns, matched case-sensitively after trimming.
const (
	ColDescription = "DESCRIPTION"
	ColLength      = "LENGTH"
	ColPartNumber  = "PART NUMBER"
	ColQuantity    = "QTY."
)

var requiredColumns = []string{ColDescription, ColLength, ColPartNumber, ColQuantity}

// ParseWorkbook reads one uploaded BOM file into a NormalizedTable.
// The first sheet is used and its first row is the header. Returns
// domain.ErrNotSpreadsheet when the bytes are not a readable workbook
// and domain.ErrMissingColumn when a required column is absent.
func ParseWorkbook(fileName string, data []byte) (*domain.NormalizedTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotSpreadsheet, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrNotSpreadsheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotSpreadsheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: header row not found", domain.ErrMissingColumn)
	}

	// Header cells are trimmed before lookup. The first occurrence
	// wins if a name appears twice.
	columns := make([]string, len(rows[0]))
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		trimmed := strings.TrimSpace(h)
		columns[i] = trimmed
		if _, ok := index[trimmed]; !ok {
			index[trimmed] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, col)
		}
	}

	table := &domain.NormalizedTable{File: fileName, Columns: columns}
	for _, cells := range rows[1:] {
		table.Rows = append(table.Rows, domain.BOMRow{
			PartNumber:  strings.TrimSpace(cellAt(cells, index[ColPartNumber])),
			Description: strings.TrimSpace(cellAt(cells, index[ColDescription])),
			// LENGTH keeps its whitespace; absent cells become "".
			Length:   cellAt(cells, index[ColLength]),
			Quantity: parseQuantity(cellAt(cells, index[ColQuantity])),
			Cells:    cells,
		})
	}
	return table, nil
}

// cellAt returns the cell at idx, or "" when the row is shorter than
// the header row (excelize drops trailing empty cells).
func cellAt(cells []string, idx int) string {
	if idx < len(cells) {
		return cells[idx]
	}
	return ""
}

// parseQuantity coerces a quantity cell to a number. Anything that
// does not parse counts as zero rather than failing the file.
func parseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
