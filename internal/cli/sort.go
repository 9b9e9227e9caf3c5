package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"cellq/internal/xlsxio"
)

var (
	sortBy    []string
	sortDesc  bool
	sortSheet string
)

var sortCmd = &cobra.Command{
	Use:   "sort <file.xlsx> [range]",
	Short: "Sort rows by key columns",
	Long: `Sort the rows of a range by one or more key columns, given as
column letters in priority order. Cells that parse as numbers compare
numerically, everything else lexicographically. Without a range the
sort covers row 2 downward, leaving the header row in place.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Row 2 downward keeps the header row in place.
		rangeStr := "2:"
		if len(args) > 1 {
			rangeStr = strings.TrimSpace(args[1])
		}

		result, err := xlsxio.SortRows(resolveArg(cmd, args[0]), sortSheet, rangeStr, sortBy, !sortDesc)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	sortCmd.Flags().StringSliceVarP(&sortBy, "by", "k", nil, "Key column letters in priority order (e.g. -k B -k A)")
	sortCmd.Flags().BoolVarP(&sortDesc, "desc", "d", false, "Sort descending")
	sortCmd.Flags().StringVarP(&sortSheet, "sheet", "s", "", "Sheet name (default: active sheet)")
	rootCmd.AddCommand(sortCmd)
}
