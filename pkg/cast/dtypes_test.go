package cast

import (
	"testing"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

func TestProjectTypes(t *testing.T) {
	schema := frame.Schema{Fields: []frame.Field{
		{Name: "customer_id", Type: frame.KindInt32},
		{Name: "ratio", Type: frame.KindFloat32},
		{Name: "active", Type: frame.KindBool},
		{Name: "name", Type: frame.KindString},
		{Name: "blob", Type: frame.KindBinary},
		{Name: "born", Type: frame.KindDate},
		{Name: "seen", Type: frame.KindTimestamp, TimeZone: "UTC"},
		{Name: "amount", Type: frame.KindDecimal, Precision: 10, Scale: 2},
	}}
	columnMap := map[string]string{
		"Customer ID": "customer_id",
		"Ratio":       "ratio",
		"Active":      "active",
		"Name":        "name",
		"Blob":        "blob",
		"Born":        "born",
		"Last Seen":   "seen",
		"Amount":      "amount",
		"Extra":       "not_in_schema",
	}

	hints := ProjectTypes(schema, columnMap)
	want := map[string]frame.Kind{
		"Customer ID": frame.KindInt32,
		"Ratio":       frame.KindFloat32,
		"Active":      frame.KindBool,
		"Name":        frame.KindString,
		"Blob":        frame.KindBinary,
		"Born":        frame.KindTimestamp,
		"Last Seen":   frame.KindTimestamp,
		"Amount":      frame.KindAny,
	}
	if len(hints) != len(want) {
		t.Fatalf("got %d hints, want %d: %v", len(hints), len(want), hints)
	}
	for name, kind := range want {
		if hints[name] != kind {
			t.Fatalf("hint for %q = %s, want %s", name, hints[name], kind)
		}
	}
}

func TestProjectTypesFromSchema(t *testing.T) {
	schema := frame.Schema{Fields: []frame.Field{
		{Name: "id", Type: frame.KindInt64},
		{Name: "seen", Type: frame.KindTimestamp},
	}}
	hints := ProjectTypesFromSchema(schema)
	if hints["id"] != frame.KindInt64 || hints["seen"] != frame.KindTimestamp {
		t.Fatalf("hints = %v", hints)
	}
}

func TestProjectTypesEmptyMap(t *testing.T) {
	schema := frame.Schema{Fields: []frame.Field{{Name: "id", Type: frame.KindInt64}}}
	if hints := ProjectTypes(schema, nil); len(hints) != 0 {
		t.Fatalf("expected no hints, got %v", hints)
	}
}
