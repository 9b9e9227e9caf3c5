package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"cellq/internal/xlsxio"
)

var clearSheet string

var clearCmd = &cobra.Command{
	Use:   "clear <file.xlsx> [range]",
	Short: "Clear cell values in a range",
	Long:  "Blank the cells of a range expression without shifting anything. Without a range the whole sheet is cleared.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeStr := strings.TrimSpace(optArg(args, 1))

		result, err := xlsxio.ClearRange(resolveArg(cmd, args[0]), clearSheet, rangeStr)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	clearCmd.Flags().StringVarP(&clearSheet, "sheet", "s", "", "Sheet name (default: active sheet)")
	rootCmd.AddCommand(clearCmd)
}
