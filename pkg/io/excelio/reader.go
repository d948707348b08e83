package excelio

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/skrubbel/fm-fabricutils/pkg/cast"
	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

type ReaderOptions struct {
	HasHeader bool
	// TypeHints maps sheet column names to a parse-time kind. Hinted columns
	// parse into typed columns (unparsable cells null); unhinted columns
	// stay raw for the normalizer to deal with.
	TypeHints map[string]frame.Kind
}

// ReadSheet loads one named sheet of a workbook into a Frame. Errors from
// opening the workbook or locating the sheet propagate as-is.
func ReadSheet(path, sheet string, opt ReaderOptions) (*frame.Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return readSheet(wb, sheet, opt)
}

// ReadSheetFrom is ReadSheet over an arbitrary reader (buffer, blob stream).
func ReadSheetFrom(r io.Reader, sheet string, opt ReaderOptions) (*frame.Frame, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = wb.Close() }()
	return readSheet(wb, sheet, opt)
}

func readSheet(wb *excelize.File, sheet string, opt ReaderOptions) (*frame.Frame, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	ncols := 0
	for _, rec := range rows {
		if len(rec) > ncols {
			ncols = len(rec)
		}
	}

	var names []string
	body := rows
	if opt.HasHeader && len(rows) > 0 {
		names = headerNames(rows[0], ncols)
		body = rows[1:]
	} else {
		names = make([]string, ncols)
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	schema := frame.Schema{Fields: make([]frame.Field, len(names))}
	for i, name := range names {
		kind := frame.KindAny
		if k, ok := opt.TypeHints[name]; ok && k != frame.KindInvalid {
			kind = k
		}
		schema.Fields[i] = frame.Field{Name: name, Type: kind, Nullable: true}
	}

	f := frame.NewFrame(schema)
	for _, rec := range body {
		f.AppendNullRow()
		row := f.Rows() - 1
		for i := range schema.Fields {
			if i >= len(rec) {
				continue
			}
			setCell(f.Column(i), row, rec[i])
		}
	}
	return f, nil
}

func headerNames(rec []string, ncols int) []string {
	names := make([]string, ncols)
	for i := range names {
		if i < len(rec) {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
	}
	if len(names) > 0 {
		names[0] = strings.TrimPrefix(names[0], "\ufeff")
	}
	for i, n := range names {
		if n == "" {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}
	return names
}

// setCell parses one cell leniently into its column: bad cells stay null.
func setCell(col frame.Column, row int, raw string) {
	val := strings.TrimSpace(raw)
	switch c := col.(type) {
	case *frame.AnyColumn:
		c.Set(row, raw)
	case *frame.StringColumn:
		if val != "" {
			c.Set(row, val)
		}
	case *frame.BytesColumn:
		if val != "" {
			c.Set(row, []byte(val))
		}
	case *frame.BoolColumn:
		if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			c.Set(row, x)
		}
	case *frame.IntColumn:
		if x, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Set(row, x)
		}
	case *frame.UintColumn:
		if x, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.Set(row, x)
		}
	case *frame.FloatColumn:
		if x, err := strconv.ParseFloat(val, 64); err == nil {
			c.Set(row, x)
		}
	case *frame.TimeColumn:
		if t, _, ok := cast.ParseTime(val); ok {
			c.Set(row, t)
		}
	}
}
