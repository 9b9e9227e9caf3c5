package mcp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cellq/internal/cache"
	"cellq/internal/sheet"
	"cellq/internal/xlsxio"
)

// Server wraps the MCP server together with a cache of parsed
// workbooks. Read tools serve from the cache as long as the file on
// disk is unchanged; write tools invalidate after saving.
type Server struct {
	mcpServer *server.MCPServer
	workbooks *cache.LRU
}

// New creates a new MCP server with all tools registered
func New() *Server {
	s := server.NewMCPServer(
		"cellq",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		workbooks: cache.New(cacheCapacity()),
	}
	srv.registerTools()

	return srv
}

// Run starts the MCP server on stdio. stdout carries the protocol, so
// diagnostics go to stderr.
func (s *Server) Run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("mcp server listening on stdio", "allowed_paths", len(AllowedBasePaths))

	if err := server.ServeStdio(s.mcpServer); err != nil {
		slog.Error("mcp server stopped", "error", err)
		return err
	}
	return nil
}

// cacheCapacity reads CELLQ_CACHE_SIZE, falling back to
// DefaultCacheSize.
func cacheCapacity() int {
	raw := os.Getenv("CELLQ_CACHE_SIZE")
	if raw == "" {
		return DefaultCacheSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		slog.Warn("ignoring invalid CELLQ_CACHE_SIZE", "value", raw)
		return DefaultCacheSize
	}
	return n
}

// loadWorkbook returns the workbook for an already-validated path,
// served from the cache when the file is unchanged since it was parsed.
func (s *Server) loadWorkbook(validPath string) (*sheet.Workbook, error) {
	info, err := os.Stat(validPath)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}

	if entry, ok := s.workbooks.Get(validPath); ok {
		if entry.ModTime.Equal(info.ModTime()) && entry.Size == info.Size() {
			slog.Debug("workbook cache hit", "file", validPath)
			return entry.Workbook, nil
		}
	}

	wb, err := xlsxio.Load(validPath)
	if err != nil {
		return nil, err
	}
	s.workbooks.Set(validPath, &cache.Entry{
		Workbook: wb,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
	})
	return wb, nil
}

// jsonResult marshals v into a text result, refusing outputs past
// MaxOutputBytes.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("JSON encoding error: %v", err)), nil
	}
	if len(data) > MaxOutputBytes {
		return mcp.NewToolResultError(fmt.Sprintf("Output too large (%d bytes, max %d bytes). Try reducing the range or limit.", len(data), MaxOutputBytes)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// resultEnvelope wraps row-shaped results so callers can tell whether
// a limit cut the data short.
type resultEnvelope struct {
	Data     any            `json:"data"`
	Metadata resultMetadata `json:"metadata"`
}

type resultMetadata struct {
	RowsReturned int  `json:"rows_returned"`
	Truncated    bool `json:"truncated"`
	Limit        int  `json:"limit"`
}

func jsonResultWithMetadata(data any, rowsReturned int, truncated bool, limit int) (*mcp.CallToolResult, error) {
	return jsonResult(resultEnvelope{
		Data: data,
		Metadata: resultMetadata{
			RowsReturned: rowsReturned,
			Truncated:    truncated,
			Limit:        limit,
		},
	})
}

// fileParam is the workbook path argument every tool takes.
func fileParam() mcp.ToolOption {
	return mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file"))
}

// sheetParam is the optional sheet selector most tools take.
func sheetParam() mcp.ToolOption {
	return mcp.WithString("sheet", mcp.Description("Sheet name (default: active sheet)"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_sheets",
		mcp.WithDescription("List the sheets of a workbook in order"),
		fileParam(),
	), s.handleListSheets)

	s.mcpServer.AddTool(mcp.NewTool("sheet_info",
		mcp.WithDescription("Get metadata about a sheet (rows, columns, headers, whether it is active)"),
		fileParam(),
		sheetParam(),
	), s.handleSheetInfo)

	s.mcpServer.AddTool(mcp.NewTool("read_range",
		mcp.WithDescription("Read cells from a range like A1:C10, B:, or 3:20. An explicit range is returned whole; reads without a range are limited (default: 1000 rows, configurable via limit)"),
		fileParam(),
		sheetParam(),
		mcp.WithString("range", mcp.Description("Range expression (e.g., A1:C10). If not specified, reads the entire sheet with limit")),
		mcp.WithNumber("limit", mcp.Description("Row limit for reads without a range (default: 1000, max: 10000)")),
	), s.handleReadRange)

	s.mcpServer.AddTool(mcp.NewTool("get_cell",
		mcp.WithDescription("Get a single cell value. Cells outside the grid read as empty"),
		fileParam(),
		mcp.WithString("cell", mcp.Required(), mcp.Description("Cell address (e.g., A1, B23)")),
		sheetParam(),
	), s.handleGetCell)

	s.mcpServer.AddTool(mcp.NewTool("get_row",
		mcp.WithDescription("Get one row of a sheet as a list of values, padded to the sheet width"),
		fileParam(),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row number (1-based)")),
		sheetParam(),
	), s.handleGetRow)

	s.mcpServer.AddTool(mcp.NewTool("get_column",
		mcp.WithDescription("Get one column of a sheet as a list of values, one per row"),
		fileParam(),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column letter (e.g., A, BC)")),
		sheetParam(),
	), s.handleGetColumn)

	s.mcpServer.AddTool(mcp.NewTool("search",
		mcp.WithDescription("Search for cells matching a pattern across sheets (max 1000 results)"),
		fileParam(),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("Search pattern (substring or regex)")),
		mcp.WithString("sheet", mcp.Description("Sheet to search (default: all sheets)")),
		mcp.WithBoolean("ignore_case", mcp.Description("Case-insensitive search (default: false)")),
		mcp.WithBoolean("regex", mcp.Description("Treat pattern as regex (default: false)")),
		mcp.WithNumber("max_results", mcp.Description("Maximum results to return (default: 100, max: 1000)")),
	), s.handleSearch)

	s.mcpServer.AddTool(mcp.NewTool("head",
		mcp.WithDescription("Get the first N rows of a sheet (max 5000 rows)"),
		fileParam(),
		sheetParam(),
		mcp.WithNumber("n", mcp.Description("Number of rows (default: 10, max: 5000)")),
	), s.handleHead)

	s.mcpServer.AddTool(mcp.NewTool("tail",
		mcp.WithDescription("Get the last N rows of a sheet (max 5000 rows)"),
		fileParam(),
		sheetParam(),
		mcp.WithNumber("n", mcp.Description("Number of rows (default: 10, max: 5000)")),
	), s.handleTail)

	s.mcpServer.AddTool(mcp.NewTool("write_cell",
		mcp.WithDescription("Write a value to a single cell. Numbers, booleans and =formulas become typed cells when the file is saved"),
		fileParam(),
		sheetParam(),
		mcp.WithString("cell", mcp.Required(), mcp.Description("Cell address (e.g., A1, B23)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to write")),
	), s.handleWriteCell)

	s.mcpServer.AddTool(mcp.NewTool("write_range",
		mcp.WithDescription("Write a 2D array of values anchored at the start of a range (max 10000 cells). The block keeps its own shape; the range's end is ignored"),
		fileParam(),
		sheetParam(),
		mcp.WithString("range", mcp.Required(), mcp.Description("Range whose start anchors the block (e.g., B2 or B2:D4)")),
		// values parameter is passed as a JSON array via BindArguments
	), s.handleWriteRange)

	s.mcpServer.AddTool(mcp.NewTool("append_rows",
		mcp.WithDescription("Append rows to the end of a sheet (max 1000 rows per call)"),
		fileParam(),
		sheetParam(),
		// rows parameter is passed as a JSON array via BindArguments
	), s.handleAppendRows)

	s.mcpServer.AddTool(mcp.NewTool("insert_rows",
		mcp.WithDescription("Insert rows at a specific position, shifting existing rows down (max 1000 rows)"),
		fileParam(),
		sheetParam(),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row number to insert at (1-based)")),
		// rows parameter is passed as a JSON array via BindArguments
	), s.handleInsertRows)

	s.mcpServer.AddTool(mcp.NewTool("remove_rows",
		mcp.WithDescription("Remove rows by 1-based row number. All numbers refer to positions before any removal"),
		fileParam(),
		sheetParam(),
		// rows parameter is passed as a JSON array via BindArguments
	), s.handleRemoveRows)

	s.mcpServer.AddTool(mcp.NewTool("remove_columns",
		mcp.WithDescription("Remove columns by letter name. All names refer to positions before any removal"),
		fileParam(),
		sheetParam(),
		// columns parameter is passed as a JSON array via BindArguments
	), s.handleRemoveColumns)

	s.mcpServer.AddTool(mcp.NewTool("clear_range",
		mcp.WithDescription("Blank the cells of a range without removing rows. Clears the entire sheet when no range is given"),
		fileParam(),
		sheetParam(),
		mcp.WithString("range", mcp.Description("Range expression to clear (default: entire sheet)")),
	), s.handleClearRange)

	s.mcpServer.AddTool(mcp.NewTool("sort_rows",
		mcp.WithDescription("Sort the rows of a range by one or more key columns. Without a range, sorts from row 2 downward so the header row stays in place"),
		fileParam(),
		sheetParam(),
		mcp.WithString("range", mcp.Description("Rows to sort (default: 2:)")),
		mcp.WithBoolean("descending", mcp.Description("Sort descending (default: false)")),
		// by parameter is passed as a JSON array of column letters via BindArguments
	), s.handleSortRows)

	s.mcpServer.AddTool(mcp.NewTool("fill_empty",
		mcp.WithDescription("Replace every empty cell inside the sheet's grid with a value"),
		fileParam(),
		sheetParam(),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to put into empty cells")),
	), s.handleFillEmpty)

	s.mcpServer.AddTool(mcp.NewTool("create_file",
		mcp.WithDescription("Create a new workbook file with optional headers and initial rows"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path for new xlsx file")),
		mcp.WithString("sheet_name", mcp.Description("Name of the first sheet (default: Sheet1)")),
		mcp.WithBoolean("overwrite", mcp.Description("Allow overwriting an existing file (default: false)")),
		// headers and rows parameters are passed as JSON arrays via BindArguments
	), s.handleCreateFile)

	s.mcpServer.AddTool(mcp.NewTool("create_sheet",
		mcp.WithDescription("Add a new sheet to an existing workbook, with optional headers"),
		fileParam(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name for the new sheet")),
		// headers parameter is passed as a JSON array via BindArguments
	), s.handleCreateSheet)

	s.mcpServer.AddTool(mcp.NewTool("remove_sheet",
		mcp.WithDescription("Remove a sheet from the workbook (the last sheet cannot be removed)"),
		fileParam(),
		mcp.WithString("sheet", mcp.Required(), mcp.Description("Name of sheet to remove")),
	), s.handleRemoveSheet)

	s.mcpServer.AddTool(mcp.NewTool("rename_sheet",
		mcp.WithDescription("Rename a sheet in the workbook"),
		fileParam(),
		mcp.WithString("old_name", mcp.Required(), mcp.Description("Current name of the sheet")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("New name for the sheet")),
	), s.handleRenameSheet)

	s.mcpServer.AddTool(mcp.NewTool("set_active_sheet",
		mcp.WithDescription("Change which sheet is active; tools default to the active sheet when no sheet is given"),
		fileParam(),
		mcp.WithString("sheet", mcp.Required(), mcp.Description("Name of sheet to activate")),
	), s.handleSetActiveSheet)
}
