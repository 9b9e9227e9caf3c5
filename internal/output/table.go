package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"cellq/internal/a1"
)

// TableFormatter renders rows as a terminal table with sheet-style
// column letters and row numbers. Not streamable; the whole grid is
// rendered at once.
type TableFormatter struct{}

func (f *TableFormatter) FormatValue(v any) ([]byte, error) {
	// Objects render as a field/value listing, anything else as a
	// single-row grid.
	if kv, ok := fieldsOf(v); ok {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"FIELD", "VALUE"})
		for _, pair := range kv {
			t.AppendRow(table.Row{pair[0], pair[1]})
		}
		return []byte(t.Render() + "\n"), nil
	}

	row, err := toStringSlice(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert value to string slice: %w", err)
	}
	return f.formatGrid([][]string{row}, 0, 0)
}

func (f *TableFormatter) FormatSlice(v any) ([]byte, error) {
	rows, err := toStringSliceSlice(v)
	if err != nil {
		return nil, fmt.Errorf("failed to convert slice to string slice slice: %w", err)
	}
	return f.formatGrid(rows, 0, 0)
}

func (f *TableFormatter) WriteHeader(w io.Writer) error {
	return nil
}

func (f *TableFormatter) WriteFooter(w io.Writer) error {
	return nil
}

func (f *TableFormatter) WriteSeparator(w io.Writer) error {
	return nil
}

// formatGrid renders a grid whose top-left cell sits at the given
// 0-indexed sheet position. Column letters and 1-indexed row numbers
// shift accordingly, so a B3-anchored grid is labeled from B and 3.
func (f *TableFormatter) formatGrid(rows [][]string, startCol, startRow int) ([]byte, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	for i := 0; i < width; i++ {
		name, err := a1.ColumnIndexToName(startCol + i)
		if err != nil {
			return nil, fmt.Errorf("failed to label column %d: %w", startCol+i, err)
		}
		header = append(header, name)
	}
	t.AppendHeader(header)

	for i, row := range rows {
		r := make(table.Row, 0, len(row)+1)
		r = append(r, startRow+i+1)
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}

	return []byte(t.Render() + "\n"), nil
}

// fieldsOf flattens an object into sorted field/value pairs via its
// JSON form. Reports false for values that are not objects.
func fieldsOf(v any) ([][2]string, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(m))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, displayValue(m[k])})
	}
	return pairs, true
}

// displayValue renders a decoded JSON value for a table cell. Nested
// structures come out as compact JSON.
func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
