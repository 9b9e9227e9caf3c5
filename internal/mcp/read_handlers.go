package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"cellq/internal/a1"
	"cellq/internal/sheet"
)

// loadArg validates the "file" argument and loads its workbook through
// the cache. A non-nil second return is the error result to hand back.
func (s *Server) loadArg(request mcp.CallToolRequest) (*sheet.Workbook, *mcp.CallToolResult) {
	path, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	wb, err := s.loadWorkbook(path)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return wb, nil
}

// clampLimit normalizes a requested limit: non-positive values fall
// back to fallback, anything above ceiling is capped.
func clampLimit(n, fallback, ceiling int) int {
	if n <= 0 {
		return fallback
	}
	return min(n, ceiling)
}

func (s *Server) handleListSheets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(wb.Sheets())
}

func (s *Server) handleSheetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	info, err := wb.Info(request.GetString("sheet", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

func (s *Server) handleReadRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	rangeStr := request.GetString("range", "")
	limit := clampLimit(request.GetInt("limit", DefaultRowLimit), DefaultRowLimit, MaxRowLimit)

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	span, err := a1.ParseRange(rangeStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := wb.RangeSpan(sheetName, span)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// An explicit range is returned whole; only bare sheet reads are
	// limited.
	truncated := false
	if rangeStr == "" && len(rows) > limit {
		rows = rows[:limit]
		truncated = true
	}

	return jsonResultWithMetadata(rows, len(rows), truncated, limit)
}

func (s *Server) handleGetCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cellAddr := request.GetString("cell", "")
	sheetName := request.GetString("sheet", "")

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	value, err := wb.Cell(sheetName, cellAddr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"sheet": displaySheet(wb, sheetName),
		"cell":  cellAddr,
		"value": value,
	})
}

func (s *Server) handleGetRow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	row := request.GetInt("row", 0)
	sheetName := request.GetString("sheet", "")

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	values, err := wb.RowValues(sheetName, row)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"sheet":  displaySheet(wb, sheetName),
		"row":    row,
		"values": values,
	})
}

func (s *Server) handleGetColumn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	column := request.GetString("column", "")
	sheetName := request.GetString("sheet", "")

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	values, err := wb.ColumnValues(sheetName, column)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"sheet":  displaySheet(wb, sheetName),
		"column": column,
		"values": values,
	})
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := request.GetString("pattern", "")
	sheetName := request.GetString("sheet", "")
	ignoreCase := request.GetBool("ignore_case", false)
	regex := request.GetBool("regex", false)
	maxResults := clampLimit(request.GetInt("max_results", DefaultSearchResults), DefaultSearchResults, MaxSearchResults)

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	results, err := wb.Search(pattern, sheet.SearchOptions{
		Sheet:           sheetName,
		CaseInsensitive: ignoreCase,
		Regex:           regex,
		MaxResults:      maxResults,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	truncated := len(results) >= maxResults

	return jsonResultWithMetadata(
		map[string]any{
			"pattern": pattern,
			"results": results,
		},
		len(results),
		truncated,
		maxResults,
	)
}

func (s *Server) handleHead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	n := clampLimit(request.GetInt("n", DefaultHeadRows), DefaultHeadRows, MaxHeadRows)

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	rows, err := wb.Head(sheetName, n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Head never truncates, n is a hard cap
	return jsonResultWithMetadata(rows, len(rows), false, n)
}

func (s *Server) handleTail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheetName := request.GetString("sheet", "")
	n := clampLimit(request.GetInt("n", DefaultTailRows), DefaultTailRows, MaxTailRows)

	wb, errResult := s.loadArg(request)
	if errResult != nil {
		return errResult, nil
	}

	rows, err := wb.Tail(sheetName, n)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Tail never truncates, n is a hard cap
	return jsonResultWithMetadata(rows, len(rows), false, n)
}

// displaySheet resolves the sheet name a result should report: the
// requested name, or the active sheet when none was given.
func displaySheet(wb *sheet.Workbook, requested string) string {
	if requested == "" {
		return wb.ActiveSheet()
	}
	return requested
}
