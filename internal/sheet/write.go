package sheet

import (
	"fmt"
	"sort"

	"cellq/internal/a1"
)

// SetCell writes a value at a single cell name like "B3", growing the
// grid as needed. Returns the previous value ("" for cells that did not
// exist yet).
func (wb *Workbook) SetCell(name, cellName, value string) (previous string, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return "", err
	}
	col, row, err := a1.ParseCellName(cellName)
	if err != nil {
		return "", err
	}

	previous = s.cellAt(col, row)
	s.setCellAt(col, row, value)
	return previous, nil
}

// SetRange writes a block of values anchored at the start of a range
// expression, growing the grid as needed. Only the start of the range
// matters: the block keeps its own shape and is not clipped to the
// range's end (writing [[1,2],[3,4]] at "B2" fills B2:C3). Open start
// bounds anchor at the first row or column. Returns the number of
// cells written.
func (wb *Workbook) SetRange(name, rangeStr string, values [][]string) (cells int, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return 0, err
	}
	span, err := a1.ParseRange(rangeStr)
	if err != nil {
		return 0, err
	}

	baseRow, baseCol := span.StartRow, span.StartCol
	if baseRow == a1.Unbounded {
		baseRow = 0
	}
	if baseCol == a1.Unbounded {
		baseCol = 0
	}

	for i, row := range values {
		for j, value := range row {
			s.setCellAt(baseCol+j, baseRow+i, value)
			cells++
		}
	}
	return cells, nil
}

// SetRows replaces the whole grid of a sheet with a deep copy of the
// given rows.
func (wb *Workbook) SetRows(name string, rows [][]string) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}

	grid := make([][]string, len(rows))
	for i, row := range rows {
		grid[i] = make([]string, len(row))
		copy(grid[i], row)
	}
	s.rows = grid
	return nil
}

// AppendRow adds a single row to the end of the sheet.
func (wb *Workbook) AppendRow(name string, row []string) error {
	_, err := wb.AppendRows(name, [][]string{row})
	return err
}

// AppendRows adds rows to the end of the sheet. Returns the 1-indexed
// row number the first new row landed on.
func (wb *Workbook) AppendRows(name string, rows [][]string) (startRow int, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return 0, err
	}

	startRow = len(s.rows) + 1
	for _, row := range rows {
		cells := make([]string, len(row))
		copy(cells, row)
		s.rows = append(s.rows, cells)
	}
	return startRow, nil
}

// InsertRows inserts rows before the 1-indexed position, shifting the
// rest down. Position may be one past the last row, which appends.
func (wb *Workbook) InsertRows(name string, row int, rows [][]string) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}
	if row < 1 || row > len(s.rows)+1 {
		return fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, row, len(s.rows))
	}

	inserted := make([][]string, len(rows))
	for i, r := range rows {
		inserted[i] = make([]string, len(r))
		copy(inserted[i], r)
	}

	idx := row - 1
	tail := make([][]string, len(s.rows[idx:]))
	copy(tail, s.rows[idx:])
	s.rows = append(append(s.rows[:idx], inserted...), tail...)
	return nil
}

// AppendColumn adds a column of values after the last populated column.
func (wb *Workbook) AppendColumn(name string, column []string) error {
	return wb.AppendColumns(name, [][]string{column})
}

// AppendColumns adds columns after the last populated column, one value
// per row from top to bottom. Columns longer than the grid grow it;
// existing rows pad with "" up to the new columns.
func (wb *Workbook) AppendColumns(name string, columns [][]string) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}

	_, base := s.Dims()
	for j, column := range columns {
		for i, value := range column {
			s.setCellAt(base+j, i, value)
		}
	}
	return nil
}

// FillEmpty replaces every empty cell inside the current grid with the
// given value. Returns the number of cells replaced.
func (wb *Workbook) FillEmpty(name, value string) (replaced int, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return 0, err
	}

	for _, row := range s.rows {
		for j, cell := range row {
			if cell == "" {
				row[j] = value
				replaced++
			}
		}
	}
	return replaced, nil
}

// RemoveRow removes one 1-indexed row, shifting the rest up.
func (wb *Workbook) RemoveRow(name string, row int) error {
	return wb.RemoveRows(name, []int{row})
}

// RemoveRows removes several 1-indexed rows at once. All numbers refer
// to positions before any removal, so {1, 2} removes the first two
// rows, not the first and the then-shifted third. Duplicates are fine.
// If any number is out of range, nothing is removed.
func (wb *Workbook) RemoveRows(name string, rows []int) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row < 1 || row > len(s.rows) {
			return fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, row, len(s.rows))
		}
	}

	doomed := make(map[int]bool, len(rows))
	for _, row := range rows {
		doomed[row-1] = true
	}

	kept := s.rows[:0]
	for i, row := range s.rows {
		if !doomed[i] {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

// RemoveColumn removes one column by letter name, shifting the rest
// left.
func (wb *Workbook) RemoveColumn(name, column string) error {
	return wb.RemoveColumns(name, []string{column})
}

// RemoveColumns removes several columns by letter name at once. Like
// RemoveRows, all names refer to positions before any removal. If any
// column lies beyond the grid, nothing is removed.
func (wb *Workbook) RemoveColumns(name string, columns []string) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}

	_, cols := s.Dims()
	doomed := make(map[int]bool, len(columns))
	for _, column := range columns {
		idx, err := a1.ColumnNameToIndex(column)
		if err != nil {
			return err
		}
		if idx >= cols {
			return fmt.Errorf("%w: column %s of %d", ErrColumnOutOfRange, column, cols)
		}
		doomed[idx] = true
	}

	victims := make([]int, 0, len(doomed))
	for idx := range doomed {
		victims = append(victims, idx)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(victims)))

	for _, idx := range victims {
		for i, row := range s.rows {
			if idx < len(row) {
				s.rows[i] = append(row[:idx], row[idx+1:]...)
			}
		}
	}
	return nil
}

// ClearRange blanks every cell inside a range expression, clamped to
// the grid. Clearing never grows the sheet: bounds past the data are
// ignored. Returns the number of cells blanked, counting cells that
// were already empty.
func (wb *Workbook) ClearRange(name, rangeStr string) (cleared int, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return 0, err
	}
	span, err := a1.ParseRange(rangeStr)
	if err != nil {
		return 0, err
	}

	rows, cols := s.Dims()
	r0, r1, c0, c1 := resolveSpan(span, rows, cols)

	for _, row := range s.rows[r0:r1] {
		for j := c0; j < c1 && j < len(row); j++ {
			row[j] = ""
			cleared++
		}
	}
	return cleared, nil
}

// Clear empties the whole grid of a sheet.
func (wb *Workbook) Clear(name string) error {
	s, err := wb.sheet(name)
	if err != nil {
		return err
	}
	s.rows = nil
	return nil
}
