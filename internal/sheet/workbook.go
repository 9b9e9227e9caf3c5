package sheet

import (
	"fmt"
	"strings"

	"cellq/internal/a1"
)

// DefaultSheetName is the name of the sheet a new workbook starts with.
const DefaultSheetName = "Sheet1"

// Sheet is one named grid of a workbook. Rows are stored ragged; readers
// pad or clamp as their contract requires.
type Sheet struct {
	name string
	rows [][]string
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Dims returns the grid dimensions: the row count and the width of the
// widest row.
func (s *Sheet) Dims() (rows, cols int) {
	rows = len(s.rows)
	for _, r := range s.rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return rows, cols
}

// cellAt returns the value at zero-based (col, row), or "" when the
// coordinates fall outside the grid.
func (s *Sheet) cellAt(col, row int) string {
	if row < 0 || row >= len(s.rows) {
		return ""
	}
	if col < 0 || col >= len(s.rows[row]) {
		return ""
	}
	return s.rows[row][col]
}

// setCellAt writes the value at zero-based (col, row), growing the grid
// as needed. Only the target row widens; sibling rows stay ragged.
func (s *Sheet) setCellAt(col, row int, value string) {
	for len(s.rows) <= row {
		s.rows = append(s.rows, nil)
	}
	for len(s.rows[row]) <= col {
		s.rows[row] = append(s.rows[row], "")
	}
	s.rows[row][col] = value
}

// Workbook is an ordered collection of sheets with one active sheet.
// Use New to construct one; a workbook always contains at least one
// sheet.
type Workbook struct {
	sheets []*Sheet
	active int
}

// New returns a workbook with a single empty active sheet named
// DefaultSheetName.
func New() *Workbook {
	return &Workbook{
		sheets: []*Sheet{{name: DefaultSheetName}},
	}
}

// Sheets returns the sheet names in workbook order.
func (wb *Workbook) Sheets() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

// ActiveSheet returns the name of the active sheet.
func (wb *Workbook) ActiveSheet() string {
	return wb.sheets[wb.active].name
}

// SetActiveSheet makes the named sheet the active one.
func (wb *Workbook) SetActiveSheet(name string) error {
	idx, err := wb.indexOf(name)
	if err != nil {
		return err
	}
	wb.active = idx
	return nil
}

// HasSheet reports whether a sheet with the given name exists. Matching
// is case-insensitive, like everywhere else in the workbook.
func (wb *Workbook) HasSheet(name string) bool {
	_, err := wb.indexOf(name)
	return err == nil
}

// CreateSheet adds a new empty sheet and makes it active.
func (wb *Workbook) CreateSheet(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSheetName)
	}
	if wb.HasSheet(name) {
		return fmt.Errorf("%w: %s", ErrSheetExists, name)
	}
	wb.sheets = append(wb.sheets, &Sheet{name: name})
	wb.active = len(wb.sheets) - 1
	return nil
}

// RemoveSheet removes the named sheet. The last remaining sheet cannot
// be removed. When the active sheet goes away, the first remaining
// sheet becomes active.
func (wb *Workbook) RemoveSheet(name string) error {
	idx, err := wb.indexOf(name)
	if err != nil {
		return err
	}
	if len(wb.sheets) <= 1 {
		return fmt.Errorf("%w: workbook must keep at least one sheet", ErrLastSheet)
	}

	wb.sheets = append(wb.sheets[:idx], wb.sheets[idx+1:]...)
	switch {
	case wb.active == idx:
		wb.active = 0
	case wb.active > idx:
		wb.active--
	}
	return nil
}

// RenameSheet renames a sheet. The empty old name means the active
// sheet. Renaming to a name that only differs in case is allowed.
func (wb *Workbook) RenameSheet(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSheetName)
	}
	idx, err := wb.indexOf(oldName)
	if err != nil {
		return err
	}
	if other, err := wb.indexOf(newName); err == nil && other != idx {
		return fmt.Errorf("%w: %s", ErrSheetExists, newName)
	}
	wb.sheets[idx].name = newName
	return nil
}

// Info returns metadata about the named sheet. The first row doubles as
// the header row when present.
func (wb *Workbook) Info(name string) (*SheetInfo, error) {
	s, err := wb.sheet(name)
	if err != nil {
		return nil, err
	}

	rows, cols := s.Dims()
	info := &SheetInfo{
		Name:   s.name,
		Rows:   rows,
		Cols:   cols,
		Active: s.name == wb.ActiveSheet(),
	}
	if rows > 0 && len(s.rows[0]) > 0 {
		info.Headers = make([]string, len(s.rows[0]))
		copy(info.Headers, s.rows[0])
	}
	return info, nil
}

// Dims returns the dimensions of the named sheet.
func (wb *Workbook) Dims(name string) (rows, cols int, err error) {
	s, err := wb.sheet(name)
	if err != nil {
		return 0, 0, err
	}
	rows, cols = s.Dims()
	return rows, cols, nil
}

// sheet resolves a sheet name to the sheet itself. The empty name means
// the active sheet; otherwise names match case-insensitively.
func (wb *Workbook) sheet(name string) (*Sheet, error) {
	if name == "" {
		return wb.sheets[wb.active], nil
	}
	idx, err := wb.indexOf(name)
	if err != nil {
		return nil, err
	}
	return wb.sheets[idx], nil
}

// indexOf resolves a sheet name to its position. The empty name means
// the active sheet.
func (wb *Workbook) indexOf(name string) (int, error) {
	if name == "" {
		return wb.active, nil
	}
	for i, s := range wb.sheets {
		if strings.EqualFold(s.name, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

// resolveSpan turns a parsed span into concrete half-open slice bounds
// for a grid of the given dimensions. Open bounds fall back to the grid
// edges and everything is clamped, so the returned bounds are always
// safe to slice with; inverted spans collapse to empty.
func resolveSpan(span a1.Span, rows, cols int) (r0, r1, c0, c1 int) {
	r0, r1 = span.StartRow, span.EndRow
	if r0 == a1.Unbounded {
		r0 = 0
	}
	if r1 == a1.Unbounded {
		r1 = rows
	}
	if r0 > rows {
		r0 = rows
	}
	if r1 > rows {
		r1 = rows
	}
	if r1 < r0 {
		r1 = r0
	}

	c0, c1 = span.StartCol, span.EndCol
	if c0 == a1.Unbounded {
		c0 = 0
	}
	if c1 == a1.Unbounded {
		c1 = cols
	}
	if c0 > cols {
		c0 = cols
	}
	if c1 > cols {
		c1 = cols
	}
	if c1 < c0 {
		c1 = c0
	}
	return r0, r1, c0, c1
}
