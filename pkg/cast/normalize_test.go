package cast

import (
	"context"
	"testing"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

func rawFrame(cells ...any) *frame.Frame {
	f := frame.NewFrame(frame.Schema{Fields: []frame.Field{
		{Name: "v", Type: frame.KindAny, Nullable: true},
	}})
	for _, c := range cells {
		f.AppendNullRow()
		_ = f.SetCell(f.Rows()-1, "v", c)
	}
	return f
}

func TestNormalizePromotesAndTrims(t *testing.T) {
	f := rawFrame("  hello  ", "", "   ", 7.5, nil)
	out, err := Normalizer{}.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("v")
	sc, ok := col.(*frame.StringColumn)
	if !ok {
		t.Fatalf("raw column not promoted to string, got %T", col)
	}
	if v, _ := sc.Get(0); v != "hello" {
		t.Fatalf("row 0 = %q", v)
	}
	if !sc.IsNull(1) || !sc.IsNull(2) {
		t.Fatal("empty and whitespace-only cells should be missing")
	}
	if v, _ := sc.Get(3); v != "7.5" {
		t.Fatalf("numeric raw cell = %q", v)
	}
	if !sc.IsNull(4) {
		t.Fatal("null cell should stay missing")
	}
}

func TestNormalizeStringColumn(t *testing.T) {
	f := frame.NewFrame(frame.Schema{Fields: []frame.Field{
		{Name: "s", Type: frame.KindString, Nullable: true},
	}})
	for _, v := range []string{" a ", "", "b"} {
		f.AppendNullRow()
		_ = f.SetCell(f.Rows()-1, "s", v)
	}
	out, err := Normalizer{}.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := out.ColumnByName("s")
	sc := col.(*frame.StringColumn)
	if v, _ := sc.Get(0); v != "a" {
		t.Fatalf("row 0 = %q", v)
	}
	if !sc.IsNull(1) {
		t.Fatal("empty string should be missing")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	f := rawFrame("  x ", "", "y", "   ")
	once, err := Normalizer{}.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Normalizer{}.Apply(context.Background(), once)
	if err != nil {
		t.Fatal(err)
	}
	a := mustString(t, once, "v")
	b := mustString(t, twice, "v")
	if a.Len() != b.Len() {
		t.Fatalf("length changed: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		av, aok := a.Get(i)
		bv, bok := b.Get(i)
		if av != bv || aok != bok {
			t.Fatalf("row %d differs after second pass: %q,%v vs %q,%v", i, av, aok, bv, bok)
		}
	}
}

func mustString(t *testing.T, f *frame.Frame, name string) *frame.StringColumn {
	t.Helper()
	col, ok := f.ColumnByName(name)
	if !ok {
		t.Fatalf("column %s missing", name)
	}
	sc, ok := col.(*frame.StringColumn)
	if !ok {
		t.Fatalf("column %s is %T", name, col)
	}
	return sc
}
