package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cellq/internal/xlsxio"
)

var appendSheet string

var appendCmd = &cobra.Command{
	Use:   "append <file.xlsx> <data-file>",
	Short: "Add rows to the end of a sheet",
	Long:  "Append rows from a JSON file (an array of arrays) to the end of a sheet.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRowsFile(args[1])
		if err != nil {
			return err
		}

		result, err := xlsxio.AppendRows(resolveArg(cmd, args[0]), appendSheet, rows)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

// readRowsFile reads a JSON array-of-arrays file into string rows.
// JSON numbers, booleans and nulls become their cell text.
func readRowsFile(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var raw [][]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse data as JSON array: %w", err)
	}
	return xlsxio.StringifyRows(raw), nil
}

func init() {
	appendCmd.Flags().StringVarP(&appendSheet, "sheet", "s", "", "Sheet name (default: active sheet)")
	rootCmd.AddCommand(appendCmd)
}
