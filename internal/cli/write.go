package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"cellq/internal/xlsxio"
)

var writeSheet string

var writeCmd = &cobra.Command{
	Use:   "write <file.xlsx> <cell> <value>",
	Short: "Set one cell's value",
	Long:  "Write a value to a specific cell. Numbers, booleans and =formulas are typed automatically when the file is saved. Use --sheet to pick a sheet.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := xlsxio.WriteCell(resolveArg(cmd, args[0]), writeSheet, strings.TrimSpace(args[1]), args[2])
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	writeCmd.Flags().StringVarP(&writeSheet, "sheet", "s", "", "Sheet name (default: active sheet)")
	rootCmd.AddCommand(writeCmd)
}
