package excelio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()
	if sheet != "Sheet1" {
		if err := wb.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatal(err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadSheetRaw(t *testing.T) {
	path := writeWorkbook(t, "Data", [][]any{
		{"name", "city"},
		{"  Ada ", "London"},
		{"Grace"},
	})

	f, err := ReadSheet(path, "Data", ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 2 || f.Cols() != 2 {
		t.Fatalf("got %dx%d", f.Rows(), f.Cols())
	}
	col, _ := f.ColumnByName("name")
	ac, ok := col.(*frame.AnyColumn)
	if !ok {
		t.Fatalf("unhinted column should be raw, got %T", col)
	}
	v, _ := ac.Get(0)
	if v != "  Ada " {
		t.Fatalf("raw cells keep their whitespace, got %q", v)
	}
	city, _ := f.ColumnByName("city")
	if !city.IsNull(1) {
		t.Fatal("short row should leave trailing cells null")
	}
}

func TestReadSheetTypeHints(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"id", "score", "active", "seen"},
		{"7", "1.5", "true", "2024-01-01 10:00:00"},
		{"x", "y", "z", "not a date"},
	})

	f, err := ReadSheet(path, "Sheet1", ReaderOptions{
		HasHeader: true,
		TypeHints: map[string]frame.Kind{
			"id":     frame.KindInt64,
			"score":  frame.KindFloat64,
			"active": frame.KindBool,
			"seen":   frame.KindTimestamp,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	id := mustCol(t, f, "id").(*frame.IntColumn)
	if v, _ := id.Get(0); v != 7 {
		t.Fatalf("id = %d", v)
	}
	if !id.IsNull(1) {
		t.Fatal("unparsable hinted cell should be null")
	}
	score := mustCol(t, f, "score").(*frame.FloatColumn)
	if v, _ := score.Get(0); v != 1.5 {
		t.Fatalf("score = %v", v)
	}
	active := mustCol(t, f, "active").(*frame.BoolColumn)
	if v, _ := active.Get(0); !v {
		t.Fatal("active should parse true")
	}
	seen := mustCol(t, f, "seen").(*frame.TimeColumn)
	v, _ := seen.Get(0)
	if !v.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("seen = %v", v)
	}
	if !seen.IsNull(1) {
		t.Fatal("unparsable date should be null")
	}
}

func TestReadSheetNoHeader(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"a", "b"},
	})
	f, err := ReadSheet(path, "Sheet1", ReaderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 1 {
		t.Fatalf("rows = %d", f.Rows())
	}
	if _, ok := f.ColumnByName("col_0"); !ok {
		t.Fatal("expected generated column names")
	}
}

func TestReadSheetMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"a"}})
	if _, err := ReadSheet(path, "Nope", ReaderOptions{HasHeader: true}); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestReadSheetMissingFile(t *testing.T) {
	if _, err := ReadSheet(filepath.Join(t.TempDir(), "nope.xlsx"), "Sheet1", ReaderOptions{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func mustCol(t *testing.T, f *frame.Frame, name string) frame.Column {
	t.Helper()
	col, ok := f.ColumnByName(name)
	if !ok {
		t.Fatalf("column %s missing", name)
	}
	return col
}
