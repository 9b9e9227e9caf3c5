package cli

import (
	"github.com/spf13/cobra"

	"cellq/internal/output"
)

var tailN int

var tailCmd = &cobra.Command{
	Use:   "tail <file.xlsx> [sheet]",
	Short: "Print the last rows of a sheet",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		sheetName := optArg(args, 1)
		rows, err := wb.Tail(sheetName, tailN)
		if err != nil {
			return err
		}

		// Label rows with their true position in the sheet
		total, _, err := wb.Dims(sheetName)
		if err != nil {
			return err
		}
		return output.PrintRows(rows, GetFormatFromCmd(cmd), 0, total-len(rows))
	},
}

func init() {
	tailCmd.Flags().IntVarP(&tailN, "number", "n", 10, "How many rows to print")
	rootCmd.AddCommand(tailCmd)
}
