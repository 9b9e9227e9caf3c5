package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cellq/internal/a1"
	"cellq/internal/output"
	"cellq/internal/sheet"
)

var readLimit int

var readCmd = &cobra.Command{
	Use:   "read <file.xlsx> [sheet] [range]",
	Short: "Read a cell range",
	Long:  `Read cells from a range expression (e.g. A1:C10, B2, C, 5:20). If no range is specified, reads the entire sheet.`,
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		sheetName, rangeStr, err := splitSheetAndRange(wb, args[1:])
		if err != nil {
			return err
		}

		span, err := a1.ParseRange(rangeStr)
		if err != nil {
			return err
		}

		rows, err := wb.RangeSpan(sheetName, span)
		if err != nil {
			return err
		}

		if span.IsWholeSheet() && readLimit > 0 && len(rows) > readLimit {
			rows = rows[:readLimit]
			fmt.Fprintf(os.Stderr, "Warning: showing first %d rows (use --limit to adjust)\n", readLimit)
		}

		startCol, startRow := span.StartCol, span.StartRow
		if startCol == a1.Unbounded {
			startCol = 0
		}
		if startRow == a1.Unbounded {
			startRow = 0
		}
		return output.PrintRows(rows, GetFormatFromCmd(cmd), startCol, startRow)
	},
}

// splitSheetAndRange interprets the trailing read arguments. A single
// argument can be either a sheet name or a range expression; a name
// that exists in the workbook wins, since sheet names like "B2" also
// parse as ranges.
func splitSheetAndRange(wb *sheet.Workbook, rest []string) (sheetName, rangeStr string, err error) {
	switch len(rest) {
	case 0:
		return "", "", nil
	case 1:
		arg := strings.TrimSpace(rest[0])
		if wb.HasSheet(arg) {
			return arg, "", nil
		}
		if a1.IsValidRange(arg) {
			return "", arg, nil
		}
		return "", "", fmt.Errorf("%q is neither a sheet in this workbook nor a valid range", rest[0])
	default:
		return rest[0], strings.TrimSpace(rest[1]), nil
	}
}

func init() {
	readCmd.Flags().IntVarP(&readLimit, "limit", "l", 1000, "Maximum rows when no range specified (0 = unlimited)")
	rootCmd.AddCommand(readCmd)
}
