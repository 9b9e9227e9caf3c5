// Package sheet implements an in-memory, multi-sheet workbook of
// row-major string grids. Cells are addressed with A1-style names and
// range expressions; all slicing follows the half-open, zero-indexed
// bounds produced by the a1 package, clamped here against the actual
// grid dimensions. Workbooks are not safe for concurrent use.
package sheet

import "errors"

// Error types
var (
	ErrSheetNotFound    = errors.New("sheet not found")
	ErrSheetExists      = errors.New("sheet already exists")
	ErrInvalidSheetName = errors.New("invalid sheet name")
	ErrLastSheet        = errors.New("cannot remove the last sheet")
	ErrRowOutOfRange    = errors.New("row out of range")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrNoSortColumns    = errors.New("no sort columns given")
)

// SheetInfo contains metadata about one sheet of a workbook
type SheetInfo struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Headers []string `json:"headers,omitempty"`
	Active  bool     `json:"active,omitempty"`
}

// SearchResult represents a cell that matched a search pattern
type SearchResult struct {
	Sheet   string `json:"sheet"`
	Address string `json:"address"`
	Value   string `json:"value"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
}

// SearchOptions configures search behavior
type SearchOptions struct {
	Sheet           string // limit to one sheet; empty searches all
	Regex           bool   // interpret the pattern as a regular expression
	CaseInsensitive bool   // fold case when matching
	MaxResults      int    // stop after this many hits (0 = unlimited)
}
