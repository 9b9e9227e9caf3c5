package cli

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.xlsx> [sheet]",
	Short: "Show sheet dimensions and headers",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		info, err := wb.Info(optArg(args, 1))
		if err != nil {
			return err
		}
		return printResult(cmd, info)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
