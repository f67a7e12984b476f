package bom

import (
	"sort"

	"github.com/shopspring/decimal"

	"bommerge/internal/domain"
)

// groupKey identifies one merged row. Equality is exact string match
// on the normalized fields; empty strings are valid key components.
type groupKey struct {
	description string
	length      string
}

// Merge concatenates the given tables in order and folds the combined
// rows into one row per (description, length) key: quantities are
// summed, the part number of the first matching row wins, and groups
// whose description is empty are dropped. Output is sorted ascending
// by (description, length); the sort is stable over first-seen group
// order so the result is deterministic. Returns
// domain.ErrNoUsableInput when called with no tables.
func Merge(tables []domain.NormalizedTable) ([]domain.MergedRow, error) {
	if len(tables) == 0 {
		return nil, domain.ErrNoUsableInput
	}

	groups := make(map[groupKey]int)
	merged := []domain.MergedRow{}
	for _, t := range tables {
		for _, row := range t.Rows {
			key := groupKey{description: row.Description, length: row.Length}
			i, ok := groups[key]
			if !ok {
				i = len(merged)
				groups[key] = i
				merged = append(merged, domain.MergedRow{
					PartNumber:  row.PartNumber,
					Description: row.Description,
					Length:      row.Length,
				})
			}
			merged[i].Quantity = merged[i].Quantity.Add(row.Quantity)
		}
	}

	out := merged[:0]
	for _, r := range merged {
		if r.Description != "" {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Description != out[j].Description {
			return out[i].Description < out[j].Description
		}
		return out[i].Length < out[j].Length
	})
	return out, nil
}

// TotalQuantity sums the quantities of the given rows.
func TotalQuantity(rows []domain.MergedRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Quantity)
	}
	return total
}
