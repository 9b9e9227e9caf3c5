package sheet

import (
	"errors"
	"reflect"
	"testing"
)

// testWorkbook returns a workbook whose active sheet holds the given rows.
func testWorkbook(t *testing.T, rows [][]string) *Workbook {
	t.Helper()
	wb := New()
	if err := wb.SetRows("", rows); err != nil {
		t.Fatalf("SetRows: %v", err)
	}
	return wb
}

func TestNewWorkbook(t *testing.T) {
	wb := New()

	if got := wb.Sheets(); !reflect.DeepEqual(got, []string{DefaultSheetName}) {
		t.Errorf("Sheets() = %v, want [%s]", got, DefaultSheetName)
	}
	if got := wb.ActiveSheet(); got != DefaultSheetName {
		t.Errorf("ActiveSheet() = %q, want %q", got, DefaultSheetName)
	}

	rows, cols, err := wb.Dims("")
	if err != nil {
		t.Fatalf("Dims: %v", err)
	}
	if rows != 0 || cols != 0 {
		t.Errorf("Dims() = (%d, %d), want (0, 0)", rows, cols)
	}
}

func TestCreateSheet(t *testing.T) {
	wb := New()

	if err := wb.CreateSheet("Data"); err != nil {
		t.Fatalf("CreateSheet(Data): %v", err)
	}
	if got := wb.ActiveSheet(); got != "Data" {
		t.Errorf("ActiveSheet() after create = %q, want Data", got)
	}
	if got := wb.Sheets(); !reflect.DeepEqual(got, []string{DefaultSheetName, "Data"}) {
		t.Errorf("Sheets() = %v", got)
	}

	// Duplicate names are rejected case-insensitively
	if err := wb.CreateSheet("data"); !errors.Is(err, ErrSheetExists) {
		t.Errorf("CreateSheet(data) error = %v, want ErrSheetExists", err)
	}

	if err := wb.CreateSheet(""); !errors.Is(err, ErrInvalidSheetName) {
		t.Errorf("CreateSheet(\"\") error = %v, want ErrInvalidSheetName", err)
	}
}

func TestRemoveSheet(t *testing.T) {
	wb := New()
	for _, name := range []string{"Data", "Archive"} {
		if err := wb.CreateSheet(name); err != nil {
			t.Fatalf("CreateSheet(%s): %v", name, err)
		}
	}

	// Removing the active sheet re-points active to the first sheet
	if got := wb.ActiveSheet(); got != "Archive" {
		t.Fatalf("ActiveSheet() = %q, want Archive", got)
	}
	if err := wb.RemoveSheet("Archive"); err != nil {
		t.Fatalf("RemoveSheet(Archive): %v", err)
	}
	if got := wb.ActiveSheet(); got != DefaultSheetName {
		t.Errorf("ActiveSheet() after removing active = %q, want %q", got, DefaultSheetName)
	}

	if err := wb.RemoveSheet("missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("RemoveSheet(missing) error = %v, want ErrSheetNotFound", err)
	}

	if err := wb.RemoveSheet("Data"); err != nil {
		t.Fatalf("RemoveSheet(Data): %v", err)
	}
	if err := wb.RemoveSheet(DefaultSheetName); !errors.Is(err, ErrLastSheet) {
		t.Errorf("RemoveSheet(last) error = %v, want ErrLastSheet", err)
	}
}

func TestRemoveSheetKeepsActiveStable(t *testing.T) {
	wb := New()
	for _, name := range []string{"B", "C"} {
		if err := wb.CreateSheet(name); err != nil {
			t.Fatalf("CreateSheet(%s): %v", name, err)
		}
	}
	// Active is "C" (index 2); removing an earlier sheet must not move it
	if err := wb.RemoveSheet("B"); err != nil {
		t.Fatalf("RemoveSheet(B): %v", err)
	}
	if got := wb.ActiveSheet(); got != "C" {
		t.Errorf("ActiveSheet() = %q, want C", got)
	}
}

func TestRenameSheet(t *testing.T) {
	wb := New()
	if err := wb.CreateSheet("Data"); err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	if err := wb.RenameSheet("Data", "Results"); err != nil {
		t.Fatalf("RenameSheet: %v", err)
	}
	if !wb.HasSheet("Results") || wb.HasSheet("Data") {
		t.Errorf("Sheets() after rename = %v", wb.Sheets())
	}

	// Renaming the active sheet via the empty name
	if err := wb.RenameSheet("", "Final"); err != nil {
		t.Fatalf("RenameSheet(\"\", Final): %v", err)
	}
	if got := wb.ActiveSheet(); got != "Final" {
		t.Errorf("ActiveSheet() = %q, want Final", got)
	}

	// Case-only renames are allowed
	if err := wb.RenameSheet("Final", "FINAL"); err != nil {
		t.Errorf("RenameSheet(Final, FINAL): %v", err)
	}

	if err := wb.RenameSheet("FINAL", DefaultSheetName); !errors.Is(err, ErrSheetExists) {
		t.Errorf("RenameSheet onto existing error = %v, want ErrSheetExists", err)
	}
	if err := wb.RenameSheet("missing", "X"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("RenameSheet(missing) error = %v, want ErrSheetNotFound", err)
	}
	if err := wb.RenameSheet("FINAL", ""); !errors.Is(err, ErrInvalidSheetName) {
		t.Errorf("RenameSheet to empty error = %v, want ErrInvalidSheetName", err)
	}
}

func TestSetActiveSheet(t *testing.T) {
	wb := New()
	if err := wb.CreateSheet("Data"); err != nil {
		t.Fatalf("CreateSheet: %v", err)
	}

	// Sheet names resolve case-insensitively
	if err := wb.SetActiveSheet("sheet1"); err != nil {
		t.Fatalf("SetActiveSheet(sheet1): %v", err)
	}
	if got := wb.ActiveSheet(); got != DefaultSheetName {
		t.Errorf("ActiveSheet() = %q, want %q", got, DefaultSheetName)
	}

	if err := wb.SetActiveSheet("missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("SetActiveSheet(missing) error = %v, want ErrSheetNotFound", err)
	}
}

func TestInfo(t *testing.T) {
	wb := testWorkbook(t, [][]string{
		{"Name", "Age", "City"},
		{"Alice", "30"},
		{"Bob", "25", "Lisbon", "extra"},
	})

	info, err := wb.Info("")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}

	if info.Name != DefaultSheetName {
		t.Errorf("Name = %q, want %q", info.Name, DefaultSheetName)
	}
	if info.Rows != 3 || info.Cols != 4 {
		t.Errorf("Rows, Cols = %d, %d, want 3, 4", info.Rows, info.Cols)
	}
	if !reflect.DeepEqual(info.Headers, []string{"Name", "Age", "City"}) {
		t.Errorf("Headers = %v", info.Headers)
	}
	if !info.Active {
		t.Error("Active = false, want true")
	}

	if _, err := wb.Info("missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("Info(missing) error = %v, want ErrSheetNotFound", err)
	}
}
