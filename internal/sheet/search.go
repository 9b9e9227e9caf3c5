package sheet

import (
	"fmt"
	"regexp"
	"strings"

	"cellq/internal/a1"
)

// Search scans the workbook for cells matching a pattern. With
// opts.Sheet set only that sheet is scanned, otherwise all sheets in
// workbook order. Empty cells never match. Results carry the A1 address
// of the hit alongside 1-indexed row and column numbers.
func (wb *Workbook) Search(pattern string, opts SearchOptions) ([]SearchResult, error) {
	if pattern == "" {
		return nil, fmt.Errorf("search pattern cannot be empty")
	}

	matcher, err := buildMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}

	var scope []*Sheet
	if opts.Sheet != "" {
		s, err := wb.sheet(opts.Sheet)
		if err != nil {
			return nil, err
		}
		scope = []*Sheet{s}
	} else {
		scope = wb.sheets
	}

	var results []SearchResult
	for _, s := range scope {
		for i, row := range s.rows {
			for j, val := range row {
				if val == "" || !matcher(val) {
					continue
				}
				addr, err := a1.CellName(j, i)
				if err != nil {
					return nil, err
				}
				results = append(results, SearchResult{
					Sheet:   s.name,
					Address: addr,
					Value:   val,
					Row:     i + 1,
					Col:     j + 1,
				})
				if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

// buildMatcher compiles the pattern into a predicate over cell values.
func buildMatcher(pattern string, opts SearchOptions) (func(string) bool, error) {
	if opts.Regex {
		flags := ""
		if opts.CaseInsensitive {
			flags = "(?i)"
		}
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		return re.MatchString, nil
	}

	if opts.CaseInsensitive {
		lower := strings.ToLower(pattern)
		return func(s string) bool {
			return strings.Contains(strings.ToLower(s), lower)
		}, nil
	}
	return func(s string) bool {
		return strings.Contains(s, pattern)
	}, nil
}
