package bom

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bommerge/internal/domain"
)

// SheetName is the single sheet of the exported workbook.
const SheetName = "Merged_BOM"

// outputColumns defines the header row in output column order.
var outputColumns = []interface{}{ColPartNumber, ColDescription, ColLength, ColQuantity}

// WriteWorkbook serializes merged rows into a single-sheet .xlsx byte
// buffer with a header row and no index column. Quantities are written
// as numbers.
func WriteWorkbook(rows []domain.MergedRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create stream writer: %w", err)
	}
	if err := sw.SetRow("A1", outputColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		qty, _ := r.Quantity.Float64()
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("resolve cell for row %d: %w", i+2, err)
		}
		row := []interface{}{r.PartNumber, r.Description, r.Length, qty}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush rows: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
