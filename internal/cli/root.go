package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cellq/internal/output"
)

var (
	formatFlag   string
	basepathFlag string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "cellq",
	Short: "cellq - range queries and edits for xlsx workbooks",
	Long:  `cellq reads, searches, and edits xlsx workbooks from the command line using A1-style range expressions like A1:C10, B2, C or 5:20.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; the real environment wins over file values
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute(ctx context.Context, version, commit, date string) error {
	if version == "" {
		version = "dev"
	}
	if commit != "" {
		version += fmt.Sprintf(" (commit: %s)", commit)
	}
	if date != "" {
		version += fmt.Sprintf(" built: %s", date)
	}

	return fang.Execute(ctx, rootCmd, fang.WithVersion(version))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format (json, csv, tsv, table)")
	rootCmd.PersistentFlags().StringVarP(&basepathFlag, "basepath", "b", "", "Base directory for relative workbook paths (env: CELLQ_BASEPATH)")
}

// GetFormat returns the current format flag value
func GetFormat() string {
	return formatFlag
}

// GetFormatFromCmd returns the format flag as parsed for a command,
// falling back to the package-level value.
func GetFormatFromCmd(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("format")
	if err != nil || format == "" {
		return GetFormat()
	}
	return format
}

// optArg returns the i-th positional argument, or "" when absent.
func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// printResult renders a command result in the chosen output format.
func printResult(cmd *cobra.Command, v any) error {
	return output.Print(v, GetFormatFromCmd(cmd))
}
