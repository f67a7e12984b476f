package bom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bommerge/internal/domain"
)

// workbookBytes builds an in-memory .xlsx with the given header and
// data rows on the default sheet.
func workbookBytes(t *testing.T, header []string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headerCells))

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func bomHeader(extra ...string) []string {
	return append([]string{"PART NUMBER", "DESCRIPTION", "LENGTH", "QTY."}, extra...)
}

func TestParseWorkbook_NormalizesFields(t *testing.T) {
	data := workbookBytes(t,
		[]string{"  PART NUMBER ", "DESCRIPTION  ", " LENGTH", "QTY. "},
		[][]interface{}{
			{" P1 ", "  Bracket ", " 10", "5"},
			{"P2", "Screw", "", "2.5"},
		},
	)

	table, err := ParseWorkbook("boms/a.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, "boms/a.xlsx", table.File)
	assert.Equal(t, []string{"PART NUMBER", "DESCRIPTION", "LENGTH", "QTY."}, table.Columns)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "P1", table.Rows[0].PartNumber)
	assert.Equal(t, "Bracket", table.Rows[0].Description)
	// LENGTH keeps its whitespace; only the header cell is trimmed.
	assert.Equal(t, " 10", table.Rows[0].Length)
	assert.Equal(t, "5", table.Rows[0].Quantity.String())

	assert.Equal(t, "", table.Rows[1].Length)
	assert.Equal(t, "2.5", table.Rows[1].Quantity.String())
}

func TestParseWorkbook_NonNumericQuantityIsZero(t *testing.T) {
	data := workbookBytes(t, bomHeader(), [][]interface{}{
		{"P1", "Bracket", "10", "n/a"},
		{"P2", "Screw", "10", nil},
	})

	table, err := ParseWorkbook("a.xlsx", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0].Quantity.IsZero())
	assert.True(t, table.Rows[1].Quantity.IsZero())
}

func TestParseWorkbook_ShortRowsNullFill(t *testing.T) {
	// Trailing empty cells are dropped by the reader; absent key
	// fields must come back as empty strings, not errors.
	data := workbookBytes(t, bomHeader(), [][]interface{}{
		{"P1"},
	})

	table, err := ParseWorkbook("a.xlsx", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "P1", table.Rows[0].PartNumber)
	assert.Equal(t, "", table.Rows[0].Description)
	assert.Equal(t, "", table.Rows[0].Length)
	assert.True(t, table.Rows[0].Quantity.IsZero())
}

func TestParseWorkbook_ExtraColumnsPassThrough(t *testing.T) {
	data := workbookBytes(t, bomHeader("MATERIAL"), [][]interface{}{
		{"P1", "Bracket", "10", "5", "steel"},
	})

	table, err := ParseWorkbook("a.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"PART NUMBER", "DESCRIPTION", "LENGTH", "QTY.", "MATERIAL"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "steel", table.Rows[0].Cells[4])
}

func TestParseWorkbook_PreservesRowOrder(t *testing.T) {
	data := workbookBytes(t, bomHeader(), [][]interface{}{
		{"P3", "Washer", "", "1"},
		{"P1", "Bracket", "10", "1"},
		{"P2", "Screw", "20", "1"},
	})

	table, err := ParseWorkbook("a.xlsx", data)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "P3", table.Rows[0].PartNumber)
	assert.Equal(t, "P1", table.Rows[1].PartNumber)
	assert.Equal(t, "P2", table.Rows[2].PartNumber)
}

func TestParseWorkbook_MissingColumn(t *testing.T) {
	data := workbookBytes(t,
		[]string{"PART NUMBER", "DESCRIPTION", "QTY."},
		[][]interface{}{{"P1", "Bracket", "5"}},
	)

	_, err := ParseWorkbook("a.xlsx", data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
	assert.Contains(t, err.Error(), "LENGTH")
}

func TestParseWorkbook_CaseSensitiveHeaders(t *testing.T) {
	data := workbookBytes(t,
		[]string{"Part Number", "Description", "Length", "Qty."},
		[][]interface{}{{"P1", "Bracket", "10", "5"}},
	)

	_, err := ParseWorkbook("a.xlsx", data)
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
}

func TestParseWorkbook_NotSpreadsheet(t *testing.T) {
	_, err := ParseWorkbook("a.xlsx", []byte("definitely not a workbook"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotSpreadsheet))
}

func TestParseWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseWorkbook("a.xlsx", buf.Bytes())
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
}
