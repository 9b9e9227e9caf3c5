package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var cellCmd = &cobra.Command{
	Use:   "cell <file.xlsx> [sheet] <address>",
	Short: "Read one cell by address",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		// With two args the sheet is omitted and the active one is used.
		sheetName := ""
		address := args[1]
		if len(args) == 3 {
			sheetName, address = args[1], args[2]
		}

		value, err := wb.Cell(sheetName, strings.TrimSpace(address))
		if err != nil {
			return err
		}
		return printResult(cmd, value)
	},
}

func init() {
	rootCmd.AddCommand(cellCmd)
}
