package cli

import (
	"github.com/spf13/cobra"

	"cellq/internal/sheet"
)

var searchOpts sheet.SearchOptions

var searchCmd = &cobra.Command{
	Use:   "search <file.xlsx> <pattern>",
	Short: "Find cells whose text matches a pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := loadWorkbookArg(cmd, args[0])
		if err != nil {
			return err
		}

		results, err := wb.Search(args[1], searchOpts)
		if err != nil {
			return err
		}
		return printResult(cmd, results)
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&searchOpts.CaseInsensitive, "ignore-case", "i", false, "Fold case when matching")
	searchCmd.Flags().BoolVarP(&searchOpts.Regex, "regex", "r", false, "Interpret the pattern as a regular expression")
	searchCmd.Flags().StringVarP(&searchOpts.Sheet, "sheet", "s", "", "Search a single sheet instead of all")
	searchCmd.Flags().IntVarP(&searchOpts.MaxResults, "max", "m", 0, "Stop after this many hits (0 = unlimited)")
	rootCmd.AddCommand(searchCmd)
}
