package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"cellq/internal/xlsxio"
)

var (
	createSheet     string
	createHeaders   string
	createOverwrite bool
	createData      string
)

var createCmd = &cobra.Command{
	Use:   "create <file.xlsx>",
	Short: "Create a new workbook file",
	Long:  "Create a fresh xlsx workbook, optionally seeded with a header row and rows from a JSON file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var headers []string
		if createHeaders != "" {
			headers = strings.Split(createHeaders, ",")
		}

		var rows [][]string
		if createData != "" {
			var err error
			rows, err = readRowsFile(createData)
			if err != nil {
				return err
			}
		}

		result, err := xlsxio.CreateFile(resolveArg(cmd, args[0]), createSheet, headers, rows, createOverwrite)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createSheet, "sheet", "s", "Sheet1", "Name for the first sheet")
	createCmd.Flags().StringVarP(&createHeaders, "headers", "H", "", "Comma-separated header row")
	createCmd.Flags().BoolVarP(&createOverwrite, "overwrite", "o", false, "Overwrite existing file")
	createCmd.Flags().StringVarP(&createData, "data", "d", "", "JSON file with initial data (array of arrays)")
	rootCmd.AddCommand(createCmd)
}
