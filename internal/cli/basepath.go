package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cellq/internal/sheet"
	"cellq/internal/xlsxio"
)

// ResolveFilePath anchors a relative file argument at the basepath.
// Absolute paths pass through untouched, as does everything when no
// basepath is configured.
func ResolveFilePath(basepath, file string) string {
	if basepath == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(basepath, file)
}

// GetBasepathFromCmd reads the persistent --basepath flag, falling
// back to CELLQ_BASEPATH when the flag is empty or unregistered.
func GetBasepathFromCmd(cmd *cobra.Command) string {
	if basepath, err := cmd.Flags().GetString("basepath"); err == nil && basepath != "" {
		return basepath
	}
	return os.Getenv("CELLQ_BASEPATH")
}

// resolveArg applies basepath resolution to one file argument.
func resolveArg(cmd *cobra.Command, file string) string {
	return ResolveFilePath(GetBasepathFromCmd(cmd), file)
}

// loadWorkbookArg resolves a file argument and parses the workbook it
// names.
func loadWorkbookArg(cmd *cobra.Command, file string) (*sheet.Workbook, error) {
	return xlsxio.Load(resolveArg(cmd, file))
}
