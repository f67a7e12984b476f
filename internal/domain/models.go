package domain

import "github.com/shopspring/decimal"

// BOMRow is one normalized record from an uploaded BOM file.
type BOMRow struct {
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	Length      string          `json:"length"`
	Quantity    decimal.Decimal `json:"quantity"`

	// Cells holds the original row untouched, in sheet column order.
	// Extra columns ride along through normalization but play no role
	// in the merge.
	Cells []string `json:"-"`
}

// NormalizedTable is one input file's rows after header lookup and
// field coercion, in original row order.
type NormalizedTable struct {
	File    string
	Columns []string
	Rows    []BOMRow
}

// MergedRow is one aggregated output record per distinct
// (description, length) key in the combined input.
type MergedRow struct {
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	Length      string          `json:"length"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// FileError records an uploaded file that was skipped during a merge
// run and why.
type FileError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MergeResult is the outcome of one upload-and-merge cycle.
type MergeResult struct {
	Rows          []MergedRow
	TotalQuantity decimal.Decimal
	FilesMerged   int
	Skipped       []FileError
}
