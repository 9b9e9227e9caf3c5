package output

import (
	"fmt"
	"os"
)

// Print renders a single result value to stdout.
func Print(result any, format string) error {
	out, err := FormatSingle(format, result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = os.Stdout.Write(out)
	return err
}

// PrintRows outputs grid data anchored at a 0-indexed sheet position,
// so the table format can label real cell addresses.
func PrintRows(rows [][]string, format string, startCol, startRow int) error {
	out, err := FormatRowsAt(format, rows, startCol, startRow)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprint(os.Stdout, string(out))
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
