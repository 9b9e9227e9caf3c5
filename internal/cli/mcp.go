package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cellq/internal/mcp"
)

var mcpAllowedPaths []string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve spreadsheet tools over MCP stdio",
	Long:  `Run cellq as a Model Context Protocol server on stdio. Tools operate on workbooks under the allowed directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The flag wins; the environment fills in when it is absent.
		var err error
		if len(mcpAllowedPaths) > 0 {
			err = mcp.InitAllowedPaths(mcpAllowedPaths)
		} else {
			err = mcp.LoadAllowedPathsFromEnv()
		}
		if err != nil {
			return fmt.Errorf("failed to configure allowed paths: %w", err)
		}

		return mcp.New().Run()
	},
}

func init() {
	mcpCmd.Flags().StringSliceVar(&mcpAllowedPaths, "allowed-paths", nil,
		"Directories file tools may touch (falls back to CELLQ_ALLOWED_PATHS)")
	rootCmd.AddCommand(mcpCmd)
}
