package frame

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Schema describes the exact shape of a target table.
type Schema struct {
	Fields []Field
}

// Field is one named, typed column of a schema. TimeZone applies to
// KindTimestamp fields ("" means zone-naive); Precision and Scale apply to
// KindDecimal fields.
type Field struct {
	Name      string
	Type      Kind
	Nullable  bool
	TimeZone  string
	Precision int
	Scale     int
}

// Field returns the schema field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindDate
	KindTimestamp
	KindDecimal
	KindAny // raw, untyped cells straight from a parser
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindUint8:     "uint8",
	KindUint16:    "uint16",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindString:    "string",
	KindBinary:    "binary",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindDecimal:   "decimal",
	KindAny:       "any",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "invalid"
}

func (k Kind) IsSignedInt() bool   { return k >= KindInt8 && k <= KindInt64 }
func (k Kind) IsUnsignedInt() bool { return k >= KindUint8 && k <= KindUint64 }
func (k Kind) IsFloat() bool       { return k == KindFloat32 || k == KindFloat64 }
func (k Kind) IsTemporal() bool    { return k == KindDate || k == KindTimestamp }

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: trueSlice(n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

// IntColumn stores any signed integer kind; the width lives in the kind and
// is enforced when values are cast in, not by the backing slice.
type IntColumn struct {
	name  string
	kind  Kind
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, kind Kind, n int) *IntColumn {
	if !kind.IsSignedInt() {
		panic("frame: IntColumn requires a signed integer kind")
	}
	return &IntColumn{name: name, kind: kind, data: make([]int64, n), nulls: trueSlice(n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return c.kind }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type UintColumn struct {
	name  string
	kind  Kind
	data  []uint64
	nulls []bool
}

func NewUintColumn(name string, kind Kind, n int) *UintColumn {
	if !kind.IsUnsignedInt() {
		panic("frame: UintColumn requires an unsigned integer kind")
	}
	return &UintColumn{name: name, kind: kind, data: make([]uint64, n), nulls: trueSlice(n)}
}
func (c *UintColumn) Name() string             { return c.name }
func (c *UintColumn) Kind() Kind               { return c.kind }
func (c *UintColumn) Len() int                 { return len(c.data) }
func (c *UintColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *UintColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *UintColumn) Get(i int) (uint64, bool) { return c.data[i], !c.nulls[i] }
func (c *UintColumn) Set(i int, v uint64)      { c.data[i] = v; c.nulls[i] = false }
func (c *UintColumn) AppendNull()              { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *UintColumn) Append(v uint64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type FloatColumn struct {
	name  string
	kind  Kind
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, kind Kind, n int) *FloatColumn {
	if !kind.IsFloat() {
		panic("frame: FloatColumn requires a float kind")
	}
	return &FloatColumn{name: name, kind: kind, data: make([]float64, n), nulls: trueSlice(n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return c.kind }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: trueSlice(n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type BytesColumn struct {
	name  string
	data  [][]byte
	nulls []bool
}

func NewBytesColumn(name string, n int) *BytesColumn {
	return &BytesColumn{name: name, data: make([][]byte, n), nulls: trueSlice(n)}
}
func (c *BytesColumn) Name() string             { return c.name }
func (c *BytesColumn) Kind() Kind               { return KindBinary }
func (c *BytesColumn) Len() int                 { return len(c.data) }
func (c *BytesColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *BytesColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *BytesColumn) Get(i int) ([]byte, bool) { return c.data[i], !c.nulls[i] }
func (c *BytesColumn) Set(i int, v []byte)      { c.data[i] = v; c.nulls[i] = false }
func (c *BytesColumn) AppendNull()              { c.data = append(c.data, nil); c.nulls = append(c.nulls, true) }
func (c *BytesColumn) Append(v []byte)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

// TimeColumn stores dates and timestamps. Zone-naive timestamps carry their
// wall clock in UTC; whether a zone applies is a property of the schema field.
type TimeColumn struct {
	name  string
	kind  Kind
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, kind Kind, n int) *TimeColumn {
	if !kind.IsTemporal() {
		panic("frame: TimeColumn requires date or timestamp kind")
	}
	return &TimeColumn{name: name, kind: kind, data: make([]time.Time, n), nulls: trueSlice(n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return c.kind }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}

type DecimalColumn struct {
	name  string
	data  []decimal.Decimal
	nulls []bool
}

func NewDecimalColumn(name string, n int) *DecimalColumn {
	return &DecimalColumn{name: name, data: make([]decimal.Decimal, n), nulls: trueSlice(n)}
}
func (c *DecimalColumn) Name() string                      { return c.name }
func (c *DecimalColumn) Kind() Kind                        { return KindDecimal }
func (c *DecimalColumn) Len() int                          { return len(c.data) }
func (c *DecimalColumn) IsNull(i int) bool                 { return c.nulls[i] }
func (c *DecimalColumn) SetNull(i int)                     { c.nulls[i] = true }
func (c *DecimalColumn) Get(i int) (decimal.Decimal, bool) { return c.data[i], !c.nulls[i] }
func (c *DecimalColumn) Set(i int, v decimal.Decimal)      { c.data[i] = v; c.nulls[i] = false }
func (c *DecimalColumn) AppendNull() {
	c.data = append(c.data, decimal.Decimal{})
	c.nulls = append(c.nulls, true)
}
func (c *DecimalColumn) Append(v decimal.Decimal) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}

// AnyColumn holds raw parser output before normalization decides what it is.
type AnyColumn struct {
	name  string
	data  []any
	nulls []bool
}

func NewAnyColumn(name string, n int) *AnyColumn {
	return &AnyColumn{name: name, data: make([]any, n), nulls: trueSlice(n)}
}
func (c *AnyColumn) Name() string          { return c.name }
func (c *AnyColumn) Kind() Kind            { return KindAny }
func (c *AnyColumn) Len() int              { return len(c.data) }
func (c *AnyColumn) IsNull(i int) bool     { return c.nulls[i] }
func (c *AnyColumn) SetNull(i int)         { c.nulls[i] = true }
func (c *AnyColumn) Get(i int) (any, bool) { return c.data[i], !c.nulls[i] }
func (c *AnyColumn) Set(i int, v any)      { c.data[i] = v; c.nulls[i] = false }
func (c *AnyColumn) AppendNull()           { c.data = append(c.data, nil); c.nulls = append(c.nulls, true) }
func (c *AnyColumn) Append(v any)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func trueSlice(n int) []bool {
	s := make([]bool, n)
	for i := range s {
		s[i] = true
	}
	return s
}

// NewColumn allocates the column type backing a schema field, with n null rows.
func NewColumn(f Field, n int) Column {
	switch {
	case f.Type == KindBool:
		return NewBoolColumn(f.Name, n)
	case f.Type.IsSignedInt():
		return NewIntColumn(f.Name, f.Type, n)
	case f.Type.IsUnsignedInt():
		return NewUintColumn(f.Name, f.Type, n)
	case f.Type.IsFloat():
		return NewFloatColumn(f.Name, f.Type, n)
	case f.Type == KindString:
		return NewStringColumn(f.Name, n)
	case f.Type == KindBinary:
		return NewBytesColumn(f.Name, n)
	case f.Type.IsTemporal():
		return NewTimeColumn(f.Name, f.Type, n)
	case f.Type == KindDecimal:
		return NewDecimalColumn(f.Name, n)
	case f.Type == KindAny:
		return NewAnyColumn(f.Name, n)
	default:
		panic("frame: invalid column kind")
	}
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Fields)), index: make(map[string]int)}
	for i, fd := range s.Fields {
		f.cols[i] = NewColumn(fd, 0)
		f.index[fd.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

func (f *Frame) Column(i int) Column { return f.cols[i] }

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *UintColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *BytesColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		case *DecimalColumn:
			col.AppendNull()
		case *AnyColumn:
			col.AppendNull()
		default:
			panic("frame: unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *UintColumn:
		switch t := v.(type) {
		case uint:
			col.Set(row, uint64(t))
		case uint64:
			col.Set(row, t)
		default:
			return fmt.Errorf("column %s expects uint/uint64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *BytesColumn:
		switch t := v.(type) {
		case []byte:
			col.Set(row, t)
		case string:
			col.Set(row, []byte(t))
		default:
			return fmt.Errorf("column %s expects []byte", name)
		}
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	case *DecimalColumn:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return fmt.Errorf("column %s expects decimal.Decimal", name)
		}
		col.Set(row, d)
	case *AnyColumn:
		col.Set(row, v)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// ApplyColumnMap keeps only the columns named as keys in m, renamed to their
// alias, preserving the frame's column order. A nil or empty map leaves the
// frame untouched.
func (f *Frame) ApplyColumnMap(m map[string]string) *Frame {
	if len(m) == 0 {
		return f
	}
	out := &Frame{index: make(map[string]int), nrows: f.nrows}
	for i, fd := range f.schema.Fields {
		alias, ok := m[fd.Name]
		if !ok {
			continue
		}
		col := renameColumn(f.cols[i], alias)
		fd.Name = alias
		out.schema.Fields = append(out.schema.Fields, fd)
		out.index[alias] = len(out.cols)
		out.cols = append(out.cols, col)
	}
	return out
}

// ReplaceColumn swaps the column at schema position i, keeping the name.
func (f *Frame) ReplaceColumn(i int, c Column) {
	f.cols[i] = c
	f.schema.Fields[i].Type = c.Kind()
}

func renameColumn(c Column, name string) Column {
	switch col := c.(type) {
	case *BoolColumn:
		col.name = name
	case *IntColumn:
		col.name = name
	case *UintColumn:
		col.name = name
	case *FloatColumn:
		col.name = name
	case *StringColumn:
		col.name = name
	case *BytesColumn:
		col.name = name
	case *TimeColumn:
		col.name = name
	case *DecimalColumn:
		col.name = name
	case *AnyColumn:
		col.name = name
	}
	return c
}
