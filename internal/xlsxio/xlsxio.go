// Package xlsxio moves workbooks between the in-memory sheet model and
// .xlsx files. Everything the file format implies (cell types, sheet
// XML, shared strings) is excelize's problem; the rest of the program
// only ever sees sheet.Workbook values.
package xlsxio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cellq/internal/a1"
	"cellq/internal/sheet"
)

// Load reads an .xlsx file into an in-memory workbook. Sheet order and
// the active sheet are preserved; cell values arrive as the strings
// excelize renders for them.
func Load(path string) (*sheet.Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: file size %d bytes exceeds limit of %d bytes",
			ErrFileTooLarge, info.Size(), MaxFileSize)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	wb := sheet.New()
	names := f.GetSheetList()
	for i, name := range names {
		if i == 0 {
			// Take over the workbook's initial sheet
			if err := wb.RenameSheet("", name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if err := wb.CreateSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		if err := wb.SetRows(name, rows); err != nil {
			return nil, fmt.Errorf("failed to fill sheet %s: %w", name, err)
		}
	}

	if idx := f.GetActiveSheetIndex(); idx >= 0 && idx < len(names) {
		if err := wb.SetActiveSheet(names[idx]); err != nil {
			return nil, fmt.Errorf("failed to set active sheet: %w", err)
		}
	}
	return wb, nil
}

// Save writes a workbook to an .xlsx file atomically. Cell values are
// written typed: values parsing as numbers or booleans become native
// cells, values starting with "=" become formulas, everything else is
// a string.
func Save(wb *sheet.Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range wb.Sheets() {
		if i == 0 {
			// excelize starts every new file with "Sheet1"
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		rows, err := wb.Rows(name)
		if err != nil {
			return fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		for rIdx, row := range rows {
			for cIdx, value := range row {
				if value == "" {
					continue
				}
				addr, err := a1.CellName(cIdx, rIdx)
				if err != nil {
					return err
				}
				if err := setTypedCell(f, name, addr, value); err != nil {
					return err
				}
			}
		}
	}

	if idx, err := f.GetSheetIndex(wb.ActiveSheet()); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return saveAtomic(f, path)
}

// saveAtomic writes the file to a temp sibling and renames it into
// place, so an interrupted save never leaves a half-written workbook.
func saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tmpPath := filepath.Join(dir, filepath.Base(path)+".tmp")
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tmpPath, err)
	}

	if err := f.Write(tmpFile); err != nil {
		tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write to temp file %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}

// setTypedCell writes one cell with the type its value looks like.
func setTypedCell(f *excelize.File, sheetName, addr, value string) error {
	switch detectValueType(value) {
	case "number":
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("failed to parse %q as number: %w", value, err)
		}
		if err := f.SetCellFloat(sheetName, addr, num, -1, 64); err != nil {
			return fmt.Errorf("failed to set cell %s as number: %w", addr, err)
		}
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse %q as bool: %w", value, err)
		}
		if err := f.SetCellBool(sheetName, addr, b); err != nil {
			return fmt.Errorf("failed to set cell %s as bool: %w", addr, err)
		}
	case "formula":
		if err := f.SetCellFormula(sheetName, addr, value); err != nil {
			return fmt.Errorf("failed to set cell %s as formula: %w", addr, err)
		}
	default:
		if err := f.SetCellStr(sheetName, addr, value); err != nil {
			return fmt.Errorf("failed to set cell %s as string: %w", addr, err)
		}
	}
	return nil
}

// detectValueType infers the cell type a string value should get.
func detectValueType(value string) string {
	if strings.HasPrefix(value, "=") {
		return "formula"
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return "number"
	}
	if _, err := strconv.ParseBool(value); err == nil {
		return "bool"
	}
	return "string"
}

// StringifyRows renders a decoded JSON array-of-arrays as the string
// grid the workbook works in. Numbers and booleans get their literal
// text, which Save turns back into typed cells; null becomes the empty
// cell.
func StringifyRows(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = StringifyCell(v)
		}
	}
	return out
}

// StringifyCell renders a single decoded JSON value as cell text.
func StringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
