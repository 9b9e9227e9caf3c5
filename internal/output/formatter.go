package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatTable Format = "table"
)

// Formatter renders values in one output encoding. FormatValue and
// FormatSlice return complete encoded chunks; the Write methods emit
// the wrapper bytes a streaming consumer puts around and between them.
type Formatter interface {
	FormatValue(v any) ([]byte, error)
	FormatSlice(v any) ([]byte, error)
	WriteHeader(w io.Writer) error
	WriteFooter(w io.Writer) error
	WriteSeparator(w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format string) (Formatter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON, "":
		return &JSONFormatter{}, nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatTSV:
		return &TSVFormatter{}, nil
	case FormatTable:
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid: json, csv, tsv, table)", format)
	}
}

// JSONFormatter emits compact JSON. Streamed chunks are wrapped in a
// JSON array, with the separator tracking how many have landed.
type JSONFormatter struct {
	itemCount int
}

func (f *JSONFormatter) FormatValue(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (f *JSONFormatter) FormatSlice(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (f *JSONFormatter) WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	return err
}

func (f *JSONFormatter) WriteFooter(w io.Writer) error {
	_, err := io.WriteString(w, "]\n")
	return err
}

func (f *JSONFormatter) WriteSeparator(w io.Writer) error {
	f.itemCount++
	if f.itemCount == 1 {
		return nil
	}
	_, err := io.WriteString(w, ",")
	return err
}

// noWrap is embedded by encodings whose rows need no surrounding
// wrapper bytes.
type noWrap struct{}

func (noWrap) WriteHeader(io.Writer) error    { return nil }
func (noWrap) WriteFooter(io.Writer) error    { return nil }
func (noWrap) WriteSeparator(io.Writer) error { return nil }

// CSVFormatter emits RFC 4180 rows.
type CSVFormatter struct{ noWrap }

func (f *CSVFormatter) FormatValue(v any) ([]byte, error) {
	row, err := toStringSlice(v)
	if err != nil {
		return nil, err
	}
	return csvEncode([][]string{row})
}

func (f *CSVFormatter) FormatSlice(v any) ([]byte, error) {
	rows, err := toStringSliceSlice(v)
	if err != nil {
		return nil, err
	}
	return csvEncode(rows)
}

// csvEncode runs rows through encoding/csv so quoting matches what
// spreadsheet importers expect.
func csvEncode(rows [][]string) ([]byte, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return []byte(buf.String()), nil
}

// TSVFormatter emits tab-separated rows with no quoting, for cutting
// straight into a terminal pipeline.
type TSVFormatter struct{ noWrap }

func (f *TSVFormatter) FormatValue(v any) ([]byte, error) {
	row, err := toStringSlice(v)
	if err != nil {
		return nil, err
	}
	return joinRows([][]string{row}), nil
}

func (f *TSVFormatter) FormatSlice(v any) ([]byte, error) {
	rows, err := toStringSliceSlice(v)
	if err != nil {
		return nil, err
	}
	return joinRows(rows), nil
}

// joinRows renders one line per row, tab between cells.
func joinRows(rows [][]string) []byte {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// toStringSlice coerces a decoded value into one row of cells. Maps
// render their values in sorted-key order so output is stable.
func toStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		row := make([]string, len(val))
		for i, cell := range val {
			row[i] = fmt.Sprintf("%v", cell)
		}
		return row, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = fmt.Sprintf("%v", val[k])
		}
		return row, nil
	default:
		return []string{fmt.Sprintf("%v", v)}, nil
	}
}

// toStringSliceSlice coerces a decoded value into a grid of cells.
func toStringSliceSlice(v any) ([][]string, error) {
	switch val := v.(type) {
	case [][]string:
		return val, nil
	case []any:
		rows := make([][]string, len(val))
		for i, r := range val {
			row, err := toStringSlice(r)
			if err != nil {
				return nil, fmt.Errorf("failed to convert row %d: %w", i, err)
			}
			rows[i] = row
		}
		return rows, nil
	default:
		row, err := toStringSlice(v)
		if err != nil {
			return nil, err
		}
		return [][]string{row}, nil
	}
}

// FormatRows renders grid data anchored at the sheet origin.
func FormatRows(format string, rows [][]string) ([]byte, error) {
	return FormatRowsAt(format, rows, 0, 0)
}

// FormatRowsAt formats row data that starts at a given 0-indexed grid
// position. The table format labels columns and rows with their sheet
// addresses; the other formats carry no addressing and ignore the
// offsets.
func FormatRowsAt(format string, rows [][]string, startCol, startRow int) ([]byte, error) {
	f, err := NewFormatter(format)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}

	if tf, ok := f.(*TableFormatter); ok {
		return tf.formatGrid(rows, startCol, startRow)
	}

	data, err := f.FormatSlice(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to format rows: %w", err)
	}
	return data, nil
}

// FormatSingle renders one result object. JSON gets the object itself,
// newline-terminated; the other formats flatten it to cells.
func FormatSingle(format string, v any) ([]byte, error) {
	if format == "" || Format(strings.ToLower(format)) == FormatJSON {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	}

	f, err := NewFormatter(format)
	if err != nil {
		return nil, fmt.Errorf("failed to create formatter: %w", err)
	}
	data, err := f.FormatValue(v)
	if err != nil {
		return nil, fmt.Errorf("failed to format value: %w", err)
	}
	return data, nil
}
