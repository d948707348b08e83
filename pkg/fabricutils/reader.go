// Package fabricutils reads spreadsheet data from lakehouse storage into
// columnar frames, optionally cast onto an exact target schema.
package fabricutils

import (
	"context"

	"github.com/skrubbel/fm-fabricutils/pkg/cast"
	"github.com/skrubbel/fm-fabricutils/pkg/frame"
	"github.com/skrubbel/fm-fabricutils/pkg/io/excelio"
)

// Options configures the readers. TypeHints is an explicit switch (not a
// process-wide backend setting): when set, the generic frame reader parses
// hinted columns up front; the schema-cast reader always parses raw, which
// is the more robust path.
type Options struct {
	TypeHints     bool
	LocalTimeZone string
	Strict        bool
}

// ReadSheetFrame reads one named sheet into a loose, normalized frame:
// column map applied (selection + rename), text trimmed, empties missing.
// No schema cast is performed.
func ReadSheetFrame(ctx context.Context, path, sheet string, schema frame.Schema, columnMap map[string]string, opt Options) (*frame.Frame, error) {
	var hints map[string]frame.Kind
	if opt.TypeHints {
		if len(columnMap) > 0 {
			hints = cast.ProjectTypes(schema, columnMap)
		} else {
			hints = cast.ProjectTypesFromSchema(schema)
		}
	}
	f, err := excelio.ReadSheet(path, sheet, excelio.ReaderOptions{HasHeader: true, TypeHints: hints})
	if err != nil {
		return nil, err
	}
	f = f.ApplyColumnMap(columnMap)
	return frame.NewPipeline().Add(cast.Normalizer{}).Run(ctx, f)
}

// ReadSheetTable reads one named sheet and casts it onto the target schema.
// The result's column set and order equal the schema exactly.
func ReadSheetTable(ctx context.Context, path, sheet string, schema frame.Schema, columnMap map[string]string, opt Options) (*frame.Frame, error) {
	f, _, err := ReadSheetTableIssues(ctx, path, sheet, schema, columnMap, opt)
	return f, err
}

// ReadSheetTableIssues is ReadSheetTable, also reporting the cells the cast
// nulled out. With opt.Strict set, a non-empty issue list is returned as a
// *cast.Error instead.
func ReadSheetTableIssues(ctx context.Context, path, sheet string, schema frame.Schema, columnMap map[string]string, opt Options) (*frame.Frame, []cast.Issue, error) {
	f, err := excelio.ReadSheet(path, sheet, excelio.ReaderOptions{HasHeader: true})
	if err != nil {
		return nil, nil, err
	}
	f = f.ApplyColumnMap(columnMap)
	caster := cast.NewCaster(schema, cast.Options{LocalTimeZone: opt.LocalTimeZone, Strict: opt.Strict})
	out, err := frame.NewPipeline().Add(cast.Normalizer{}).Add(caster).Run(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return out, caster.Issues(), nil
}
