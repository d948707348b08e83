package lakehouse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const mappingJSON = `{
  "Sales WS|Bronze LH|bronze_to_silver": {
    "source_workspace": "Sales WS",
    "source_lakehouse": "Bronze LH",
    "target_workspace": "Sales WS",
    "target_lakehouse": "Silver LH"
  }
}`

const mappingYAML = `
Sales WS|Bronze LH|bronze_to_silver:
  source_workspace: Sales WS
  source_lakehouse: Bronze LH
  target_workspace: Sales WS
  target_lakehouse: Silver LH
`

const mappingTOML = `
["Sales WS|Bronze LH|bronze_to_silver"]
source_workspace = "Sales WS"
source_lakehouse = "Bronze LH"
target_workspace = "Sales WS"
target_lakehouse = "Silver LH"
`

func writeMapping(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolvePathsFormats(t *testing.T) {
	cases := map[string]string{
		"mappings.json": mappingJSON,
		"mappings.yaml": mappingYAML,
		"mappings.toml": mappingTOML,
	}
	for name, body := range cases {
		r := NewResolver(writeMapping(t, name, body))
		paths, err := r.ResolvePaths("Sales WS", "Bronze LH", "bronze_to_silver")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		wantSource := "abfss://Sales WS@onelake.dfs.fabric.microsoft.com/Bronze LH.Lakehouse/"
		wantTarget := "abfss://Sales WS@onelake.dfs.fabric.microsoft.com/Silver LH.Lakehouse/"
		if paths.Source != wantSource {
			t.Fatalf("%s: source = %q, want %q", name, paths.Source, wantSource)
		}
		if paths.Target != wantTarget {
			t.Fatalf("%s: target = %q, want %q", name, paths.Target, wantTarget)
		}
	}
}

func TestResolvePathsMissingFile(t *testing.T) {
	r := NewResolver(filepath.Join(t.TempDir(), "nope.json"))
	_, err := r.ResolvePaths("ws", "lh", "ctx")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}

func TestResolvePathsMalformed(t *testing.T) {
	path := writeMapping(t, "broken.json", "{not json")
	r := NewResolver(path)
	_, err := r.ResolvePaths("ws", "lh", "ctx")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("parse error should name the file: %v", err)
	}
}

func TestResolvePathsUnknownKey(t *testing.T) {
	r := NewResolver(writeMapping(t, "mappings.json", mappingJSON))
	_, err := r.ResolvePaths("Other WS", "Bronze LH", "bronze_to_silver")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNotMapped) {
		t.Fatalf("want ErrNotMapped, got %v", err)
	}
	if !strings.Contains(err.Error(), "Other WS|Bronze LH|bronze_to_silver") {
		t.Fatalf("error should name the failed key: %v", err)
	}
}

type fakeContext struct {
	ws, lh string
}

func (c fakeContext) CurrentWorkspaceName() (string, error) { return c.ws, nil }
func (c fakeContext) CurrentLakehouseName() (string, error) { return c.lh, nil }

func TestResolveCurrentPaths(t *testing.T) {
	r := NewResolver(writeMapping(t, "mappings.yaml", mappingYAML))
	paths, err := r.ResolveCurrentPaths(fakeContext{ws: "Sales WS", lh: "Bronze LH"}, "bronze_to_silver")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(paths.Target, "Silver LH.Lakehouse") {
		t.Fatalf("target = %q", paths.Target)
	}
}

func TestResolverHostOverride(t *testing.T) {
	r := NewResolver(writeMapping(t, "mappings.json", mappingJSON))
	r.Scheme, r.Host = "https", "example.dev"
	paths, err := r.ResolvePaths("Sales WS", "Bronze LH", "bronze_to_silver")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(paths.Source, "https://Sales WS@example.dev/") {
		t.Fatalf("source = %q", paths.Source)
	}
}
