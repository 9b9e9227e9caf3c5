package xlsxio

import (
	"fmt"
	"os"

	"cellq/internal/sheet"
)

// The operations below share one shape: load the workbook, apply a
// store mutation, save atomically. Limits are enforced here, at the
// boundary where untrusted sizes arrive, so the store itself stays
// policy-free.

// WriteCell writes a value to a single cell and reports the previous
// value for confirmation.
func WriteCell(path, sheetName, cell, value string) (*WriteResult, error) {
	// 1. Load the workbook
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}

	// 2. Write through the store
	previous, err := wb.SetCell(sheetName, cell, value)
	if err != nil {
		return nil, err
	}

	// 3. Save atomically
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &WriteResult{
		Success:       true,
		Cell:          cell,
		PreviousValue: previous,
		NewValue:      value,
	}, nil
}

// WriteRange writes a block of values anchored at the start of a range
// expression. Enforces MaxWriteRangeCells.
func WriteRange(path, sheetName, rangeStr string, values [][]string) (*WriteResult, error) {
	// 1. Validate cell count
	totalCells := 0
	for _, row := range values {
		totalCells += len(row)
	}
	if totalCells > MaxWriteRangeCells {
		return nil, fmt.Errorf("%w: attempting to write %d cells, limit is %d",
			ErrCellLimitExceeded, totalCells, MaxWriteRangeCells)
	}

	// 2. Load the workbook
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}

	// 3. Write through the store
	written, err := wb.SetRange(sheetName, rangeStr, values)
	if err != nil {
		return nil, err
	}

	// 4. Save atomically
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &WriteResult{
		Success:  true,
		Cell:     rangeStr,
		NewValue: fmt.Sprintf("wrote %d cells", written),
	}, nil
}

// AppendRows appends rows after the last row of a sheet. Enforces
// MaxAppendRows.
func AppendRows(path, sheetName string, rows [][]string) (*AppendResult, error) {
	// 1. Validate row count
	if len(rows) > MaxAppendRows {
		return nil, fmt.Errorf("%w: attempting to append %d rows, limit is %d",
			ErrRowLimitExceeded, len(rows), MaxAppendRows)
	}

	// 2. Load the workbook
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}

	// 3. Append through the store
	start, err := wb.AppendRows(sheetName, rows)
	if err != nil {
		return nil, err
	}

	// 4. Save atomically
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &AppendResult{
		Success:     true,
		RowsAdded:   len(rows),
		StartingRow: start,
		EndingRow:   start + len(rows) - 1,
	}, nil
}

// InsertRows inserts rows before a 1-indexed position, shifting the
// rest down. Enforces MaxAppendRows.
func InsertRows(path, sheetName string, row int, rows [][]string) (*AppendResult, error) {
	if len(rows) > MaxAppendRows {
		return nil, fmt.Errorf("%w: attempting to insert %d rows, limit is %d",
			ErrRowLimitExceeded, len(rows), MaxAppendRows)
	}

	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.InsertRows(sheetName, row, rows); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &AppendResult{
		Success:     true,
		RowsAdded:   len(rows),
		StartingRow: row,
		EndingRow:   row + len(rows) - 1,
	}, nil
}

// RemoveRows removes 1-indexed rows, all numbered against the grid
// before any removal.
func RemoveRows(path, sheetName string, rows []int) (*RemoveResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.RemoveRows(sheetName, rows); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &RemoveResult{Success: true, Removed: len(rows)}, nil
}

// RemoveColumns removes columns by letter name.
func RemoveColumns(path, sheetName string, columns []string) (*RemoveResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.RemoveColumns(sheetName, columns); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &RemoveResult{Success: true, Removed: len(columns)}, nil
}

// ClearRange blanks the cells of a range expression; the empty
// expression clears the whole sheet.
func ClearRange(path, sheetName, rangeStr string) (*ClearResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	cleared, err := wb.ClearRange(sheetName, rangeStr)
	if err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &ClearResult{Success: true, Cleared: cleared}, nil
}

// SortRows sorts the rows of a range by one or more key columns.
func SortRows(path, sheetName, rangeStr string, by []string, ascending bool) (*SortResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.SortRows(sheetName, rangeStr, by, ascending); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	resolved := sheetName
	if resolved == "" {
		resolved = wb.ActiveSheet()
	}
	return &SortResult{Success: true, Sheet: resolved, Keys: by}, nil
}

// FillEmpty replaces every empty cell of a sheet with a value.
func FillEmpty(path, sheetName, value string) (*FillResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	replaced, err := wb.FillEmpty(sheetName, value)
	if err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &FillResult{Success: true, Replaced: replaced}, nil
}

// CreateFile creates a new workbook file with optional headers and
// rows. Enforces MaxCreateFileRows. Refuses to overwrite unless asked.
func CreateFile(path, sheetName string, headers []string, rows [][]string, overwrite bool) (*CreateFileResult, error) {
	// 1. Validate row count
	if len(rows) > MaxCreateFileRows {
		return nil, fmt.Errorf("%w: attempting to create file with %d rows, limit is %d",
			ErrRowLimitExceeded, len(rows), MaxCreateFileRows)
	}

	// 2. Check if the file exists
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check if file exists: %w", err)
	}

	// 3. Build the workbook in memory
	wb := sheet.New()
	finalSheet := sheet.DefaultSheetName
	if sheetName != "" {
		finalSheet = sheetName
		if err := wb.RenameSheet("", finalSheet); err != nil {
			return nil, err
		}
	}

	written := 0
	if len(headers) > 0 {
		if err := wb.AppendRow(finalSheet, headers); err != nil {
			return nil, err
		}
		written++
	}
	for _, row := range rows {
		if err := wb.AppendRow(finalSheet, row); err != nil {
			return nil, err
		}
		written++
	}

	// 4. Save atomically
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &CreateFileResult{
		Success:     true,
		File:        path,
		SheetName:   finalSheet,
		RowsWritten: written,
	}, nil
}

// CreateSheet adds a new sheet to an existing workbook file, with an
// optional header row.
func CreateSheet(path, name string, headers []string) (*SheetResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.CreateSheet(name); err != nil {
		return nil, err
	}
	if len(headers) > 0 {
		if err := wb.AppendRow(name, headers); err != nil {
			return nil, err
		}
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &SheetResult{Success: true, Sheet: name}, nil
}

// RemoveSheet removes a sheet from a workbook file. The last sheet
// cannot be removed.
func RemoveSheet(path, name string) (*SheetResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.RemoveSheet(name); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &SheetResult{Success: true, Sheet: name}, nil
}

// RenameSheet renames a sheet in a workbook file.
func RenameSheet(path, oldName, newName string) (*SheetResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.RenameSheet(oldName, newName); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &SheetResult{Success: true, Sheet: newName}, nil
}

// SetActiveSheet changes which sheet opens first.
func SetActiveSheet(path, name string) (*SheetResult, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := wb.SetActiveSheet(name); err != nil {
		return nil, err
	}
	if err := Save(wb, path); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	return &SheetResult{Success: true, Sheet: wb.ActiveSheet()}, nil
}
