package sheet

import (
	"testing"
)

func searchWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb := testWorkbook(t, [][]string{
		{"Name", "Department"},
		{"Alice", "Engineering"},
		{"Bob", "Marketing"},
	})
	if err := wb.CreateSheet("Products"); err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}
	if err := wb.SetRows("Products", [][]string{
		{"Product", "Price"},
		{"Engine part", "99"},
	}); err != nil {
		t.Fatalf("SetRows: %v", err)
	}
	return wb
}

func TestSearch(t *testing.T) {
	wb := searchWorkbook(t)

	t.Run("substring across all sheets", func(t *testing.T) {
		results, err := wb.Search("Engine", SearchOptions{})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].Sheet != DefaultSheetName || results[0].Address != "B2" {
			t.Errorf("first hit = %s!%s, want %s!B2", results[0].Sheet, results[0].Address, DefaultSheetName)
		}
		if results[1].Sheet != "Products" || results[1].Address != "A2" {
			t.Errorf("second hit = %s!%s, want Products!A2", results[1].Sheet, results[1].Address)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		results, err := wb.Search("engineering", SearchOptions{CaseInsensitive: true})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 || results[0].Value != "Engineering" {
			t.Errorf("results = %+v", results)
		}
	})

	t.Run("sheet scoped", func(t *testing.T) {
		results, err := wb.Search("Engine", SearchOptions{Sheet: "Products"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 || results[0].Sheet != "Products" {
			t.Errorf("results = %+v", results)
		}
	})

	t.Run("regex", func(t *testing.T) {
		results, err := wb.Search("^Al.ce$", SearchOptions{Regex: true})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 || results[0].Address != "A2" {
			t.Errorf("results = %+v", results)
		}
	})

	t.Run("max results", func(t *testing.T) {
		results, err := wb.Search("e", SearchOptions{MaxResults: 2})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("got %d results, want 2", len(results))
		}
	})

	t.Run("row and column are 1-indexed", func(t *testing.T) {
		results, err := wb.Search("Marketing", SearchOptions{})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		r := results[0]
		if r.Row != 3 || r.Col != 2 || r.Address != "B3" {
			t.Errorf("hit = row %d col %d addr %s, want row 3 col 2 addr B3", r.Row, r.Col, r.Address)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := wb.Search("", SearchOptions{}); err == nil {
			t.Error("empty pattern expected error, got nil")
		}
		if _, err := wb.Search("[", SearchOptions{Regex: true}); err == nil {
			t.Error("invalid regex expected error, got nil")
		}
		if _, err := wb.Search("x", SearchOptions{Sheet: "missing"}); err == nil {
			t.Error("missing sheet expected error, got nil")
		}
	})
}
