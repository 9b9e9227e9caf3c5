package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"cellq/internal/xlsxio"
)

// mutate runs op against a validated, size-checked path, then drops the
// cached workbook so later reads see the changed file. Handlers parse
// and sanity-check their arguments before calling it.
func (s *Server) mutate(file string, allowOverwrite bool, op func(path string) (any, error)) (*mcp.CallToolResult, error) {
	path, err := ValidateWritePath(file, allowOverwrite)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := CheckFileSize(path, xlsxio.MaxFileSize); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := op(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.workbooks.Invalidate(path)
	return jsonResult(result)
}

func (s *Server) handleWriteCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	cell := request.GetString("cell", "")
	value := request.GetString("value", "")

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.WriteCell(path, sheetName, cell, value)
	})
}

func (s *Server) handleWriteRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	rangeStr := request.GetString("range", "")

	var args struct {
		Values [][]any `json:"values"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse values: %v", err)), nil
	}
	if len(args.Values) == 0 {
		return mcp.NewToolResultError("no values provided"), nil
	}
	totalCells := 0
	for _, row := range args.Values {
		totalCells += len(row)
	}
	if totalCells > xlsxio.MaxWriteRangeCells {
		return mcp.NewToolResultError(fmt.Sprintf("too many cells: %d exceeds limit of %d", totalCells, xlsxio.MaxWriteRangeCells)), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.WriteRange(path, sheetName, rangeStr, xlsxio.StringifyRows(args.Values))
	})
}

func (s *Server) handleAppendRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")

	rows, errResult := rowsArg(request)
	if errResult != nil {
		return errResult, nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.AppendRows(path, sheetName, xlsxio.StringifyRows(rows))
	})
}

func (s *Server) handleInsertRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	row := request.GetInt("row", 0)

	rows, errResult := rowsArg(request)
	if errResult != nil {
		return errResult, nil
	}
	if row < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid row number: %d (must be >= 1)", row)), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.InsertRows(path, sheetName, row, xlsxio.StringifyRows(rows))
	})
}

// rowsArg pulls the "rows" argument out of a request and bounds-checks
// it against the append limit.
func rowsArg(request mcp.CallToolRequest) ([][]any, *mcp.CallToolResult) {
	var args struct {
		Rows [][]any `json:"rows"`
	}
	if err := request.BindArguments(&args); err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to parse rows: %v", err))
	}
	if len(args.Rows) == 0 {
		return nil, mcp.NewToolResultError("no rows provided")
	}
	if len(args.Rows) > xlsxio.MaxAppendRows {
		return nil, mcp.NewToolResultError(fmt.Sprintf("too many rows: %d exceeds limit of %d", len(args.Rows), xlsxio.MaxAppendRows))
	}
	return args.Rows, nil
}

func (s *Server) handleRemoveRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")

	var args struct {
		Rows []int `json:"rows"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse rows: %v", err)), nil
	}
	if len(args.Rows) == 0 {
		return mcp.NewToolResultError("no rows provided"), nil
	}
	if len(args.Rows) > xlsxio.MaxAppendRows {
		return mcp.NewToolResultError(fmt.Sprintf("too many rows: %d exceeds limit of %d", len(args.Rows), xlsxio.MaxAppendRows)), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.RemoveRows(path, sheetName, args.Rows)
	})
}

func (s *Server) handleRemoveColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")

	var args struct {
		Columns []string `json:"columns"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse columns: %v", err)), nil
	}
	if len(args.Columns) == 0 {
		return mcp.NewToolResultError("no columns provided"), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.RemoveColumns(path, sheetName, args.Columns)
	})
}

func (s *Server) handleClearRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	rangeStr := request.GetString("range", "")

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.ClearRange(path, sheetName, rangeStr)
	})
}

func (s *Server) handleSortRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	rangeStr := request.GetString("range", "")
	descending := request.GetBool("descending", false)

	var args struct {
		By []string `json:"by"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse by: %v", err)), nil
	}

	// Without a range, sort below the header row
	if rangeStr == "" {
		rangeStr = "2:"
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.SortRows(path, sheetName, rangeStr, args.By, !descending)
	})
}

func (s *Server) handleFillEmpty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	value := request.GetString("value", "")

	if value == "" {
		return mcp.NewToolResultError("no fill value provided"), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.FillEmpty(path, sheetName, value)
	})
}

func (s *Server) handleCreateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet_name", "")
	overwrite := request.GetBool("overwrite", false)

	var args struct {
		Headers []string `json:"headers"`
		Rows    [][]any  `json:"rows"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse arguments: %v", err)), nil
	}
	if len(args.Rows) > xlsxio.MaxCreateFileRows {
		return mcp.NewToolResultError(fmt.Sprintf("too many rows: %d exceeds limit of %d", len(args.Rows), xlsxio.MaxCreateFileRows)), nil
	}

	return s.mutate(request.GetString("file", ""), overwrite, func(path string) (any, error) {
		return xlsxio.CreateFile(path, sheetName, args.Headers, xlsxio.StringifyRows(args.Rows), overwrite)
	})
}

func (s *Server) handleCreateSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")

	var args struct {
		Headers []string `json:"headers"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse headers: %v", err)), nil
	}

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.CreateSheet(path, name, args.Headers)
	})
}

func (s *Server) handleRemoveSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.RemoveSheet(path, sheetName)
	})
}

func (s *Server) handleRenameSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldName := request.GetString("old_name", "")
	newName := request.GetString("new_name", "")

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.RenameSheet(path, oldName, newName)
	})
}

func (s *Server) handleSetActiveSheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")

	return s.mutate(request.GetString("file", ""), true, func(path string) (any, error) {
		return xlsxio.SetActiveSheet(path, sheetName)
	})
}
