package cli

import (
	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <file.xlsx>",
	Short: "List the sheets of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, wb.Sheets())
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}
