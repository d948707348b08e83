package cast

import (
	"context"
	"fmt"
	"time"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

// Options controls a schema cast.
type Options struct {
	// LocalTimeZone is the IANA zone naive timestamps are localized to when
	// the target field carries a zone. Empty means the field's own zone.
	LocalTimeZone string
	// Strict turns recorded coercion issues into a returned *Error instead
	// of silently nulled cells.
	Strict bool
}

// Issue is one cell the caster could not reconcile with the schema.
type Issue struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d column %s: %s (value %q)", i.Row, i.Column, i.Reason, i.Value)
}

// Error carries the issues of a strict cast.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return "cast: " + e.Issues[0].String()
	}
	return fmt.Sprintf("cast: %d cells could not be cast, first: %s", len(e.Issues), e.Issues[0])
}

// Caster casts a normalized frame onto an exact target schema. The output
// frame has the schema's columns, in schema order; missing columns are added
// all-null and extra columns are dropped. Cells that cannot be reconciled
// become missing and are recorded as issues.
type Caster struct {
	Schema  frame.Schema
	Options Options

	issues []Issue
}

func NewCaster(schema frame.Schema, opt Options) *Caster {
	return &Caster{Schema: schema, Options: opt}
}

func (c *Caster) Name() string { return "cast_schema" }

// Issues reports the cells nulled by the most recent Apply.
func (c *Caster) Issues() []Issue { return c.issues }

func (c *Caster) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	c.issues = nil
	out := frame.NewFrame(c.Schema)
	for r := 0; r < f.Rows(); r++ {
		out.AppendNullRow()
	}
	for i, fd := range c.Schema.Fields {
		src, ok := f.ColumnByName(fd.Name)
		if !ok {
			continue // column completion: stays all-null
		}
		if err := c.castColumn(out.Column(i), fd, src); err != nil {
			return nil, err
		}
	}
	if c.Options.Strict && len(c.issues) > 0 {
		return nil, &Error{Issues: c.issues}
	}
	return out, nil
}

func (c *Caster) fail(row int, fd frame.Field, v any, reason string) {
	text, _ := coerceString(v)
	c.issues = append(c.issues, Issue{Row: row, Column: fd.Name, Value: text, Reason: reason})
}

func (c *Caster) castColumn(dst frame.Column, fd frame.Field, src frame.Column) error {
	var target, local *time.Location
	if fd.Type == frame.KindTimestamp && fd.TimeZone != "" {
		var err error
		target, err = time.LoadLocation(fd.TimeZone)
		if err != nil {
			return fmt.Errorf("schema field %s: bad time zone %q: %w", fd.Name, fd.TimeZone, err)
		}
		local = target
		if c.Options.LocalTimeZone != "" {
			local, err = time.LoadLocation(c.Options.LocalTimeZone)
			if err != nil {
				return fmt.Errorf("bad local time zone %q: %w", c.Options.LocalTimeZone, err)
			}
		}
	}

	for r := 0; r < src.Len(); r++ {
		v, ok := cellValue(src, r)
		if !ok {
			continue // already missing
		}
		switch col := dst.(type) {
		case *frame.BoolColumn:
			if b, ok := coerceBool(v); ok {
				col.Set(r, b)
			} else {
				c.fail(r, fd, v, "not a boolean")
			}
		case *frame.IntColumn:
			if n, ok := coerceInt(v, fd.Type); ok {
				col.Set(r, n)
			} else {
				c.fail(r, fd, v, "not a "+fd.Type.String())
			}
		case *frame.UintColumn:
			if n, ok := coerceUint(v, fd.Type); ok {
				col.Set(r, n)
			} else {
				c.fail(r, fd, v, "not a "+fd.Type.String())
			}
		case *frame.FloatColumn:
			if x, ok := coerceFloat(v, fd.Type); ok {
				col.Set(r, x)
			} else {
				c.fail(r, fd, v, "not a "+fd.Type.String())
			}
		case *frame.StringColumn:
			if s, ok := coerceString(v); ok {
				col.Set(r, s)
			} else {
				c.fail(r, fd, v, "not a string")
			}
		case *frame.BytesColumn:
			if b, ok := coerceBytes(v); ok {
				col.Set(r, b)
			} else {
				c.fail(r, fd, v, "not binary")
			}
		case *frame.TimeColumn:
			t, ok := c.castTime(r, fd, v, target, local)
			if ok {
				col.Set(r, t)
			}
		case *frame.DecimalColumn:
			d, skip, ok := coerceDecimal(v, fd)
			if ok {
				col.Set(r, d)
			} else if !skip {
				c.fail(r, fd, v, fmt.Sprintf("not a decimal(%d,%d)", fd.Precision, fd.Scale))
			}
		default:
			return fmt.Errorf("schema field %s: cannot cast to %s", fd.Name, fd.Type)
		}
	}
	return nil
}

// castTime reconciles one cell with a date or timestamp field. Naive target:
// aware values become their UTC wall clock. Zoned target: naive values are
// localized (gap readings shift forward, ambiguous readings go missing) and
// aware values convert into the field's zone.
func (c *Caster) castTime(row int, fd frame.Field, v any, target, local *time.Location) (time.Time, bool) {
	t, aware, ok := coerceTime(v)
	if !ok {
		c.fail(row, fd, v, "not a "+fd.Type.String())
		return time.Time{}, false
	}

	if fd.Type == frame.KindDate {
		if aware {
			t = t.In(time.UTC)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	if target == nil {
		if !aware {
			return t, true
		}
		t = t.In(time.UTC)
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	}

	if !aware {
		lt, ambiguous := localize(t, local)
		if ambiguous {
			c.fail(row, fd, v, "ambiguous local time in "+local.String())
			return time.Time{}, false
		}
		t = lt
	}
	return t.In(target), true
}
