package sheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cellq/internal/a1"
)

// SortRows reorders the rows selected by a range expression using one
// or more key columns, given by letter name and applied in order. Only
// the row bounds of the range matter; whole rows move together. The
// sort is stable. Values compare numerically when both sides parse as
// numbers, lexicographically otherwise.
//
// The empty range sorts every row. Callers keeping a header row in row
// 1 pass "2:" to leave it in place.
func (wb *Workbook) SortRows(name, rangeStr string, by []string, ascending bool) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}
	if len(by) == 0 {
		return ErrNoSortColumns
	}

	rows, cols := s.Dims()
	keys := make([]int, len(by))
	for i, column := range by {
		idx, err := a1.ColumnNameToIndex(column)
		if err != nil {
			return err
		}
		if idx >= cols {
			return fmt.Errorf("%w: sort column %s of %d", ErrColumnOutOfRange, column, cols)
		}
		keys[i] = idx
	}

	span, err := a1.ParseRange(rangeStr)
	if err != nil {
		return err
	}
	r0, r1, _, _ := resolveSpan(span, rows, cols)

	window := s.rows[r0:r1]
	sort.SliceStable(window, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(valueAt(window[i], k), valueAt(window[j], k))
			if c != 0 {
				if ascending {
					return c < 0
				}
				return c > 0
			}
		}
		return false
	})
	return nil
}

// valueAt reads a cell from a possibly short row.
func valueAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// compareValues orders two cell values: numeric when both parse as
// numbers, lexicographic otherwise.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
