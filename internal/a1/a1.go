// Package a1 translates spreadsheet-style A1 addresses and range
// expressions into zero-indexed, half-open bounds that compose directly
// with slice expressions. It is pure string math: no table is consulted,
// and bounds are never clamped to any table's actual size.
package a1

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Error types
var (
	ErrInvalidColumnName = errors.New("invalid column name")
	ErrMalformedRange    = errors.New("malformed range")
)

// Unbounded marks a Span bound the range expression left open.
const Unbounded = -1

// Span is the zero-indexed projection of a range expression: rows
// [StartRow, EndRow) and columns [StartCol, EndCol), end exclusive.
// A bound is Unbounded when the expression omits it ("B:B" constrains
// no rows, "3:3" constrains no columns). Resolving Unbounded against a
// concrete table, and clamping to its size, is the caller's job.
type Span struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

// WholeSheet returns the span with all four bounds open.
func WholeSheet() Span {
	return Span{StartRow: Unbounded, EndRow: Unbounded, StartCol: Unbounded, EndCol: Unbounded}
}

// IsWholeSheet reports whether every bound is open.
func (s Span) IsWholeSheet() bool {
	return s.StartRow == Unbounded && s.EndRow == Unbounded &&
		s.StartCol == Unbounded && s.EndCol == Unbounded
}

// String reconstructs a range expression that parses back to the same
// span. Open bounds render as absence; the whole sheet renders as "".
func (s Span) String() string {
	var start, end string
	if s.StartCol != Unbounded {
		name, err := ColumnIndexToName(s.StartCol)
		if err == nil {
			start += name
		}
	}
	if s.StartRow != Unbounded {
		start += strconv.Itoa(s.StartRow + 1)
	}
	if s.EndCol != Unbounded {
		name, err := ColumnIndexToName(s.EndCol - 1)
		if err == nil {
			end += name
		}
	}
	if s.EndRow != Unbounded {
		end += strconv.Itoa(s.EndRow)
	}
	if start == end {
		return start
	}
	return start + ":" + end
}

// ColumnNameToIndex converts a column name (A, B, ..., Z, AA, AB, ...) to a
// zero-based index: "A" is 0, "Z" is 25, "AA" is 26. Names are
// case-insensitive. An empty string or any non-letter character is an
// ErrInvalidColumnName.
func ColumnNameToIndex(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidColumnName)
	}
	idx := 0
	for _, ch := range strings.ToUpper(name) {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumnName, name)
		}
		idx = idx*26 + int(ch-'A'+1)
	}
	return idx - 1, nil
}

// ColumnIndexToName converts a zero-based column index to a column name:
// 0 is "A", 25 is "Z", 26 is "AA". Negative indices are an
// ErrInvalidColumnName.
func ColumnIndexToName(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative column index %d", ErrInvalidColumnName, index)
	}
	col := index + 1
	name := ""
	for col > 0 {
		col-- // bijective base-26 has no zero digit
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name, nil
}

// rangeRegex validates the whole range grammar: optional letters, optional
// digits, optionally a colon followed by a second letters/digits pair.
var (
	rangeRegex   = regexp.MustCompile(`^[A-Za-z]*[0-9]*(?::[A-Za-z]*[0-9]*)?$`)
	lettersRegex = regexp.MustCompile(`[A-Za-z]+`)
	digitsRegex  = regexp.MustCompile(`[0-9]+`)
)

// ParseRange parses a range expression like "A1:C10", "B3", "C", "5",
// "A2:" or "" into a Span.
//
// The empty string selects the whole sheet. An expression without a colon
// duplicates itself ("B3" means "B3:B3", "C" means "C:C"). On each side of
// the colon the letter run bounds columns and the digit run bounds rows;
// either or both may be absent, leaving that bound open. End bounds come
// out exclusive: "A1:C10" covers columns [0,3) and rows [0,10).
//
// Each endpoint may name a cell, a bare column, or a bare row, in any
// combination: "1:A" is accepted and constrains rows from 1 and columns
// through A. Endpoints are not reordered, so a reversed expression like
// "D5:B2" yields an empty (inverted) span rather than an error.
func ParseRange(rangeStr string) (Span, error) {
	if rangeStr == "" {
		return WholeSheet(), nil
	}
	if !rangeRegex.MatchString(rangeStr) {
		return Span{}, fmt.Errorf("%w: %q", ErrMalformedRange, rangeStr)
	}
	if !strings.Contains(rangeStr, ":") {
		rangeStr = rangeStr + ":" + rangeStr
	}
	start, end, _ := strings.Cut(rangeStr, ":")

	startCol, startRow, err := parseEndpoint(start)
	if err != nil {
		return Span{}, err
	}
	endCol, endRow, err := parseEndpoint(end)
	if err != nil {
		return Span{}, err
	}

	span := Span{StartRow: startRow, StartCol: startCol, EndRow: Unbounded, EndCol: Unbounded}
	if endCol != Unbounded {
		span.EndCol = endCol + 1
	}
	if endRow != Unbounded {
		span.EndRow = endRow + 1
	}
	return span, nil
}

// parseEndpoint extracts the column and row indices one side of a range
// expression contributes. Absent parts come back Unbounded.
func parseEndpoint(token string) (col, row int, err error) {
	col, row = Unbounded, Unbounded
	if letters := lettersRegex.FindString(token); letters != "" {
		col, err = ColumnNameToIndex(letters)
		if err != nil {
			return 0, 0, err
		}
	}
	if digits := digitsRegex.FindString(token); digits != "" {
		n, convErr := strconv.Atoi(digits)
		if convErr != nil || n < 1 {
			return 0, 0, fmt.Errorf("%w: row number out of range in %q", ErrMalformedRange, token)
		}
		row = n - 1
	}
	return col, row, nil
}

// cellNameRegex matches single-cell names like A1, B23, AA100.
var cellNameRegex = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// ParseCellName parses a single-cell name like "B3" into zero-based column
// and row indices (1, 2). Unlike a range endpoint, a cell name requires
// both the column letters and the row digits.
func ParseCellName(name string) (col, row int, err error) {
	matches := cellNameRegex.FindStringSubmatch(name)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: not a cell name: %q", ErrMalformedRange, name)
	}
	col, err = ColumnNameToIndex(matches[1])
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(matches[2])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("%w: row number out of range in %q", ErrMalformedRange, name)
	}
	return col, n - 1, nil
}

// CellName formats zero-based column and row indices as a cell name:
// (1, 2) is "B3".
func CellName(col, row int) (string, error) {
	name, err := ColumnIndexToName(col)
	if err != nil {
		return "", err
	}
	if row < 0 {
		return "", fmt.Errorf("%w: negative row index %d", ErrMalformedRange, row)
	}
	return fmt.Sprintf("%s%d", name, row+1), nil
}

// IsValidRange reports whether s parses as a range expression. Note the
// empty string is valid (it selects the whole sheet).
func IsValidRange(s string) bool {
	_, err := ParseRange(s)
	return err == nil
}
