package sheet

import (
	"errors"
	"reflect"
	"testing"

	"cellq/internal/a1"
)

func TestSortRows(t *testing.T) {
	base := [][]string{
		{"Name", "Age", "City"},
		{"Carol", "35", "Faro"},
		{"Alice", "30", "Lisbon"},
		{"Bob", "9", "Porto"},
	}

	t.Run("numeric ascending skipping header", func(t *testing.T) {
		wb := testWorkbook(t, base)
		if err := wb.SortRows("", "2:", []string{"B"}, true); err != nil {
			t.Fatalf("SortRows: %v", err)
		}
		got, err := wb.ColumnValues("", "A")
		if err != nil {
			t.Fatalf("ColumnValues: %v", err)
		}
		// "9" sorts below "30" numerically, not lexicographically
		if want := []string{"Name", "Bob", "Alice", "Carol"}; !reflect.DeepEqual(got, want) {
			t.Errorf("names = %v, want %v", got, want)
		}
	})

	t.Run("descending", func(t *testing.T) {
		wb := testWorkbook(t, base)
		if err := wb.SortRows("", "2:", []string{"B"}, false); err != nil {
			t.Fatalf("SortRows: %v", err)
		}
		got, err := wb.ColumnValues("", "B")
		if err != nil {
			t.Fatalf("ColumnValues: %v", err)
		}
		if want := []string{"Age", "35", "30", "9"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ages = %v, want %v", got, want)
		}
	})

	t.Run("whole sheet when range empty", func(t *testing.T) {
		wb := testWorkbook(t, [][]string{{"b"}, {"c"}, {"a"}})
		if err := wb.SortRows("", "", []string{"A"}, true); err != nil {
			t.Fatalf("SortRows: %v", err)
		}
		got, err := wb.ColumnValues("", "A")
		if err != nil {
			t.Fatalf("ColumnValues: %v", err)
		}
		if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
			t.Errorf("column = %v, want %v", got, want)
		}
	})

	t.Run("multi key keeps secondary order", func(t *testing.T) {
		wb := testWorkbook(t, [][]string{
			{"x", "2"},
			{"y", "1"},
			{"x", "1"},
		})
		if err := wb.SortRows("", "", []string{"A", "B"}, true); err != nil {
			t.Fatalf("SortRows: %v", err)
		}
		got, err := wb.Rows("")
		if err != nil {
			t.Fatalf("Rows: %v", err)
		}
		want := [][]string{
			{"x", "1"},
			{"x", "2"},
			{"y", "1"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("rows = %v, want %v", got, want)
		}
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		wb := testWorkbook(t, [][]string{
			{"same", "first"},
			{"same", "second"},
			{"same", "third"},
		})
		if err := wb.SortRows("", "", []string{"A"}, true); err != nil {
			t.Fatalf("SortRows: %v", err)
		}
		got, err := wb.ColumnValues("", "B")
		if err != nil {
			t.Fatalf("ColumnValues: %v", err)
		}
		if want := []string{"first", "second", "third"}; !reflect.DeepEqual(got, want) {
			t.Errorf("order changed for equal keys: %v", got)
		}
	})

	t.Run("errors", func(t *testing.T) {
		wb := testWorkbook(t, base)
		if err := wb.SortRows("", "", nil, true); !errors.Is(err, ErrNoSortColumns) {
			t.Errorf("no columns error = %v, want ErrNoSortColumns", err)
		}
		if err := wb.SortRows("", "", []string{"Z"}, true); !errors.Is(err, ErrColumnOutOfRange) {
			t.Errorf("missing column error = %v, want ErrColumnOutOfRange", err)
		}
		if err := wb.SortRows("", "", []string{"1"}, true); !errors.Is(err, a1.ErrInvalidColumnName) {
			t.Errorf("bad column name error = %v, want ErrInvalidColumnName", err)
		}
		if err := wb.SortRows("", "1A:", []string{"A"}, true); !errors.Is(err, a1.ErrMalformedRange) {
			t.Errorf("malformed range error = %v, want ErrMalformedRange", err)
		}
	})
}
