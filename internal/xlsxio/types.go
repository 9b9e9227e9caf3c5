package xlsxio

import "errors"

// Constants for file operation limits
const (
	MaxFileSize        = 50 * 1024 * 1024 // 50MB - maximum size of a file we will open
	MaxAppendRows      = 1000             // Maximum rows appended or inserted in a single operation
	MaxWriteRangeCells = 10000            // Maximum cells written in a single range operation
	MaxCreateFileRows  = 10000            // Maximum rows when creating a new file
)

// Error types for file operations
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileExists        = errors.New("file already exists")
	ErrFileTooLarge      = errors.New("file exceeds size limit")
	ErrRowLimitExceeded  = errors.New("row limit exceeded")
	ErrCellLimitExceeded = errors.New("cell limit exceeded")
)

// WriteResult represents the result of a cell or range write
type WriteResult struct {
	Success       bool   `json:"success"`
	Cell          string `json:"cell,omitempty"`
	PreviousValue string `json:"previous_value,omitempty"`
	NewValue      string `json:"new_value,omitempty"`
}

// AppendResult represents the result of appending or inserting rows
type AppendResult struct {
	Success     bool `json:"success"`
	RowsAdded   int  `json:"rows_added"`
	StartingRow int  `json:"starting_row"`
	EndingRow   int  `json:"ending_row"`
}

// CreateFileResult represents the result of creating a new workbook file
type CreateFileResult struct {
	Success     bool   `json:"success"`
	File        string `json:"file"`
	SheetName   string `json:"sheet_name"`
	RowsWritten int    `json:"rows_written,omitempty"`
}

// SheetResult represents the result of a sheet operation
type SheetResult struct {
	Success bool   `json:"success"`
	Sheet   string `json:"sheet"`
}

// RemoveResult represents the result of removing rows or columns
type RemoveResult struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}

// ClearResult represents the result of clearing a range
type ClearResult struct {
	Success bool `json:"success"`
	Cleared int  `json:"cleared"`
}

// SortResult represents the result of sorting rows
type SortResult struct {
	Success bool     `json:"success"`
	Sheet   string   `json:"sheet"`
	Keys    []string `json:"keys"`
}

// FillResult represents the result of filling empty cells
type FillResult struct {
	Success  bool `json:"success"`
	Replaced int  `json:"replaced"`
}
