package cli

import (
	"github.com/spf13/cobra"

	"cellq/internal/output"
)

var headN int

var headCmd = &cobra.Command{
	Use:   "head <file.xlsx> [sheet]",
	Short: "Print the first rows of a sheet",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		rows, err := wb.Head(optArg(args, 1), headN)
		if err != nil {
			return err
		}
		return output.PrintRows(rows, GetFormatFromCmd(cmd), 0, 0)
	},
}

func init() {
	headCmd.Flags().IntVarP(&headN, "number", "n", 10, "How many rows to print")
	rootCmd.AddCommand(headCmd)
}
