package sheet

import (
	"fmt"

	"cellq/internal/a1"
)

// Range returns the cells selected by a range expression, clamped to
// the grid. The empty expression selects the whole sheet. Rows shorter
// than the requested columns come back shorter; nothing is padded.
func (wb *Workbook) Range(name, rangeStr string) ([][]string, error) {
	span, err := a1.ParseRange(rangeStr)
	if err != nil {
		return nil, err
	}
	return wb.RangeSpan(name, span)
}

// RangeSpan is Range for an already-parsed span.
func (wb *Workbook) RangeSpan(name string, span a1.Span) ([][]string, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return nil, err
	}

	rows, cols := s.Dims()
	r0, r1, c0, c1 := resolveSpan(span, rows, cols)

	out := make([][]string, 0, r1-r0)
	for _, row := range s.rows[r0:r1] {
		lo, hi := c0, c1
		if lo > len(row) {
			lo = len(row)
		}
		if hi > len(row) {
			hi = len(row)
		}
		cells := make([]string, hi-lo)
		copy(cells, row[lo:hi])
		out = append(out, cells)
	}
	return out, nil
}

// Cell returns the value at a single cell name like "B3". Cells outside
// the grid read as empty.
func (wb *Workbook) Cell(name, cellName string) (string, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return "", err
	}
	col, row, err := a1.ParseCellName(cellName)
	if err != nil {
		return "", err
	}
	return s.cellAt(col, row), nil
}

// RowValues returns a copy of one 1-indexed row, padded with "" to the
// grid width.
func (wb *Workbook) RowValues(name string, row int) ([]string, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return nil, err
	}

	rows, cols := s.Dims()
	if row < 1 || row > rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, row, rows)
	}

	out := make([]string, cols)
	copy(out, s.rows[row-1])
	return out, nil
}

// ColumnValues returns a copy of one column by letter name, one value
// per row; rows shorter than the column contribute "".
func (wb *Workbook) ColumnValues(name, column string) ([]string, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return nil, err
	}
	col, err := a1.ColumnNameToIndex(column)
	if err != nil {
		return nil, err
	}

	rows, cols := s.Dims()
	if col >= cols {
		return nil, fmt.Errorf("%w: column %s of %d", ErrColumnOutOfRange, column, cols)
	}

	out := make([]string, rows)
	for i, row := range s.rows {
		if col < len(row) {
			out[i] = row[col]
		}
	}
	return out, nil
}

// Rows returns a deep copy of the whole grid, padded rectangular.
// Mutating the copy never affects the workbook.
func (wb *Workbook) Rows(name string) ([][]string, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return nil, err
	}

	_, cols := s.Dims()
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = make([]string, cols)
		copy(out[i], row)
	}
	return out, nil
}

// Head returns the first n rows of the sheet (default 10 when n <= 0).
func (wb *Workbook) Head(name string, n int) ([][]string, error) {
	if n <= 0 {
		n = 10
	}
	return wb.RangeSpan(name, a1.Span{
		StartRow: 0, EndRow: n,
		StartCol: a1.Unbounded, EndCol: a1.Unbounded,
	})
}

// Tail returns the last n rows of the sheet (default 10 when n <= 0).
func (wb *Workbook) Tail(name string, n int) ([][]string, error) {
	if n <= 0 {
		n = 10
	}
	rows, _, err := wb.Dims(name)
	if err != nil {
		return nil, err
	}
	start := rows - n
	if start < 0 {
		start = 0
	}
	return wb.RangeSpan(name, a1.Span{
		StartRow: start, EndRow: rows,
		StartCol: a1.Unbounded, EndCol: a1.Unbounded,
	})
}
