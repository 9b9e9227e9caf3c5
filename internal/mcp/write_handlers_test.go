package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"cellq/internal/xlsxio"
)

// scratchDir makes a directory under testdata, where the default path
// policy permits writes, and removes it when the test finishes.
func scratchDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join("testdata", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// resultText unwraps the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

// decodeResult fails the test on an error result, otherwise unmarshals
// the JSON payload into out.
func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("tool reported: %s", text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		t.Fatalf("decode payload %q: %v", text, err)
	}
}

// wantToolError asserts an in-band error result mentioning substr.
func wantToolError(t *testing.T, result *mcp.CallToolResult, substr string) {
	t.Helper()
	text := resultText(t, result)
	if !result.IsError {
		t.Fatalf("expected an error result, got: %s", text)
	}
	if !strings.Contains(text, substr) {
		t.Errorf("error %q does not mention %q", text, substr)
	}
}

func TestHandleWriteCell(t *testing.T) {
	dir := scratchDir(t, "tmp_write_cell_test")
	file := filepath.Join(dir, "write_cell.xlsx")
	if _, err := xlsxio.CreateFile(file, "Sheet1", nil, nil, false); err != nil {
		t.Fatalf("seed workbook: %v", err)
	}

	srv := New()
	result, err := srv.handleWriteCell(context.Background(), createMockRequest("write_cell", map[string]any{
		"file":  file,
		"sheet": "Sheet1",
		"cell":  "A1",
		"value": "Hello, World!",
	}))
	if err != nil {
		t.Fatalf("handleWriteCell: %v", err)
	}

	var wr xlsxio.WriteResult
	decodeResult(t, result, &wr)
	if !wr.Success || wr.Cell != "A1" || wr.NewValue != "Hello, World!" {
		t.Errorf("unexpected write result: %+v", wr)
	}

	// The change must land on disk, not only in the response
	wb, err := xlsxio.Load(file)
	if err != nil {
		t.Fatalf("reload workbook: %v", err)
	}
	value, err := wb.Cell("Sheet1", "A1")
	if err != nil {
		t.Fatalf("read back cell: %v", err)
	}
	if value != "Hello, World!" {
		t.Errorf("cell A1 on disk = %q, want %q", value, "Hello, World!")
	}
}

func TestHandleAppendRows(t *testing.T) {
	dir := scratchDir(t, "tmp_append_rows_test")
	file := filepath.Join(dir, "append_rows.xlsx")
	_, err := xlsxio.CreateFile(file, "Sheet1",
		[]string{"Name", "Age", "City"},
		[][]string{
			{"Alice", "30", "New York"},
			{"Bob", "25", "San Francisco"},
		}, false)
	if err != nil {
		t.Fatalf("seed workbook: %v", err)
	}

	srv := New()
	result, err := srv.handleAppendRows(context.Background(), createMockRequest("append_rows", map[string]any{
		"file":  file,
		"sheet": "Sheet1",
		"rows": [][]any{
			{"Charlie", 35, "Los Angeles"},
			{"Diana", 28, "Seattle"},
		},
	}))
	if err != nil {
		t.Fatalf("handleAppendRows: %v", err)
	}

	var ar xlsxio.AppendResult
	decodeResult(t, result, &ar)
	if !ar.Success || ar.RowsAdded != 2 {
		t.Errorf("unexpected append result: %+v", ar)
	}
	// Header plus two data rows already present, so the new block spans
	// rows 4 and 5
	if ar.StartingRow != 4 || ar.EndingRow != 5 {
		t.Errorf("appended block spans rows %d..%d, want 4..5", ar.StartingRow, ar.EndingRow)
	}

	wb, err := xlsxio.Load(file)
	if err != nil {
		t.Fatalf("reload workbook: %v", err)
	}
	value, err := wb.Cell("Sheet1", "B4")
	if err != nil {
		t.Fatalf("read back cell: %v", err)
	}
	if value != "35" {
		t.Errorf("cell B4 = %q, want the appended age 35", value)
	}
}

func TestHandleCreateFile(t *testing.T) {
	dir := scratchDir(t, "tmp_create_file_test")
	file := filepath.Join(dir, "inventory.xlsx")

	srv := New()
	result, err := srv.handleCreateFile(context.Background(), createMockRequest("create_file", map[string]any{
		"file":       file,
		"sheet_name": "Inventory",
		"headers":    []string{"Product", "Price", "Quantity"},
		"rows": [][]any{
			{"Widget", 19.99, 100},
			{"Gadget", 29.99, 50},
		},
	}))
	if err != nil {
		t.Fatalf("handleCreateFile: %v", err)
	}

	var cr xlsxio.CreateFileResult
	decodeResult(t, result, &cr)
	if !cr.Success || cr.SheetName != "Inventory" || cr.RowsWritten != 3 {
		t.Errorf("unexpected create result: %+v", cr)
	}

	wb, err := xlsxio.Load(file)
	if err != nil {
		t.Fatalf("reload created workbook: %v", err)
	}
	info, err := wb.Info("Inventory")
	if err != nil {
		t.Fatalf("sheet info: %v", err)
	}
	if info.Rows != 3 || info.Cols != 3 {
		t.Errorf("created sheet is %dx%d, want 3x3", info.Rows, info.Cols)
	}
	price, err := wb.Cell("Inventory", "B2")
	if err != nil {
		t.Fatalf("read back cell: %v", err)
	}
	if price != "19.99" {
		t.Errorf("cell B2 = %q, want 19.99", price)
	}
}

func TestHandleWriteCellErrors(t *testing.T) {
	srv := New()

	tests := []struct {
		name    string
		args    map[string]any
		errText string
	}{
		{"path outside allowed directories",
			map[string]any{"file": "/tmp/test.xlsx", "cell": "A1", "value": "x"},
			"denied"},
		{"blocked extension",
			map[string]any{"file": ".env", "cell": "A1", "value": "x"},
			"only .xlsx files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := srv.handleWriteCell(context.Background(), createMockRequest("write_cell", tt.args))
			if err != nil {
				t.Fatalf("handleWriteCell: %v", err)
			}
			wantToolError(t, result, tt.errText)
		})
	}
}

func TestHandleAppendRowsErrors(t *testing.T) {
	srv := New()

	tests := []struct {
		name    string
		rows    [][]any
		errText string
	}{
		{"empty batch", [][]any{}, "no rows provided"},
		{"batch past the row limit", make([][]any, xlsxio.MaxAppendRows+1), "too many rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Row checks run before path validation, so the file does
			// not need to exist
			result, err := srv.handleAppendRows(context.Background(), createMockRequest("append_rows", map[string]any{
				"file": "does_not_exist.xlsx",
				"rows": tt.rows,
			}))
			if err != nil {
				t.Fatalf("handleAppendRows: %v", err)
			}
			wantToolError(t, result, tt.errText)
		})
	}
}

func TestHandleSortRows(t *testing.T) {
	dir := scratchDir(t, "tmp_sort_rows_test")
	file := filepath.Join(dir, "sortable.xlsx")
	_, err := xlsxio.CreateFile(file, "Sheet1",
		[]string{"Name", "Age"},
		[][]string{
			{"Carol", "35"},
			{"Alice", "30"},
			{"Bob", "25"},
		}, false)
	if err != nil {
		t.Fatalf("seed workbook: %v", err)
	}

	srv := New()

	// No range given, so everything below the header row gets sorted
	result, err := srv.handleSortRows(context.Background(), createMockRequest("sort_rows", map[string]any{
		"file": file,
		"by":   []string{"B"},
	}))
	if err != nil {
		t.Fatalf("handleSortRows: %v", err)
	}

	var sr xlsxio.SortResult
	decodeResult(t, result, &sr)
	if !sr.Success {
		t.Errorf("unexpected sort result: %+v", sr)
	}
	if len(sr.Keys) != 1 || sr.Keys[0] != "B" {
		t.Errorf("sort keys = %v, want [B]", sr.Keys)
	}

	wb, err := xlsxio.Load(file)
	if err != nil {
		t.Fatalf("reload workbook: %v", err)
	}
	rows, err := wb.Rows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	want := [][]string{
		{"Name", "Age"},
		{"Bob", "25"},
		{"Alice", "30"},
		{"Carol", "35"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows after sort = %v, want %v", rows, want)
	}
}

func TestHandleRemoveRows(t *testing.T) {
	dir := scratchDir(t, "tmp_remove_rows_test")
	file := filepath.Join(dir, "prunable.xlsx")
	_, err := xlsxio.CreateFile(file, "Sheet1",
		[]string{"Name", "Age"},
		[][]string{
			{"Alice", "30"},
			{"Bob", "25"},
			{"Carol", "35"},
		}, false)
	if err != nil {
		t.Fatalf("seed workbook: %v", err)
	}

	srv := New()

	// Row numbers refer to the sheet before any removal
	result, err := srv.handleRemoveRows(context.Background(), createMockRequest("remove_rows", map[string]any{
		"file": file,
		"rows": []int{2, 4},
	}))
	if err != nil {
		t.Fatalf("handleRemoveRows: %v", err)
	}

	var rr xlsxio.RemoveResult
	decodeResult(t, result, &rr)
	if rr.Removed != 2 {
		t.Errorf("removed %d rows, want 2", rr.Removed)
	}

	wb, err := xlsxio.Load(file)
	if err != nil {
		t.Fatalf("reload workbook: %v", err)
	}
	rows, err := wb.Rows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	want := [][]string{
		{"Name", "Age"},
		{"Bob", "25"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows after removal = %v, want %v", rows, want)
	}
}

func TestWriteCellInvalidatesCache(t *testing.T) {
	dir := scratchDir(t, "tmp_cache_invalidate_test")
	file := filepath.Join(dir, "cached.xlsx")
	_, err := xlsxio.CreateFile(file, "Data",
		[]string{"K", "V"},
		[][]string{{"a", "1"}}, false)
	if err != nil {
		t.Fatalf("seed workbook: %v", err)
	}

	srv := New()

	readCell := func() string {
		t.Helper()
		result, err := srv.handleGetCell(context.Background(),
			createMockRequest("get_cell", map[string]any{"file": file, "cell": "B2"}))
		if err != nil {
			t.Fatalf("handleGetCell: %v", err)
		}
		var payload struct {
			Value string `json:"value"`
		}
		decodeResult(t, result, &payload)
		return payload.Value
	}

	// Two reads in a row so the workbook is definitely cached
	if got := readCell(); got != "1" {
		t.Fatalf("initial read = %q, want 1", got)
	}
	if got := readCell(); got != "1" {
		t.Fatalf("cached read = %q, want 1", got)
	}

	result, err := srv.handleWriteCell(context.Background(),
		createMockRequest("write_cell", map[string]any{"file": file, "cell": "B2", "value": "2"}))
	if err != nil {
		t.Fatalf("handleWriteCell: %v", err)
	}
	if result.IsError {
		t.Fatalf("write failed: %s", resultText(t, result))
	}

	// A stale cache entry would still answer 1 here
	if got := readCell(); got != "2" {
		t.Errorf("read after write = %q, want 2", got)
	}
}
