// Package arrow converts cast frames into Apache Arrow records for handoff
// to engines that speak Arrow.
package arrow

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/arrow"
	"github.com/apache/arrow/go/arrow/array"
	"github.com/apache/arrow/go/arrow/decimal128"
	"github.com/apache/arrow/go/arrow/memory"
	"github.com/shopspring/decimal"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

// decimal128.FromI64 bounds the unscaled values this adapter can carry.
var (
	maxDecimalUnscaled = decimal.NewFromInt(math.MaxInt64)
	minDecimalUnscaled = decimal.NewFromInt(math.MinInt64)
)

// ToArrowSchema maps a frame schema to its Arrow equivalent.
func ToArrowSchema(s frame.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(s.Fields))
	for i, fd := range s.Fields {
		dt, err := dataType(fd)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: fd.Name, Type: dt, Nullable: fd.Nullable}
	}
	return arrow.NewSchema(fields, nil), nil
}

func dataType(fd frame.Field) (arrow.DataType, error) {
	switch fd.Type {
	case frame.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case frame.KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case frame.KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case frame.KindInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case frame.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case frame.KindUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case frame.KindUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case frame.KindUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case frame.KindUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case frame.KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case frame.KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case frame.KindString:
		return arrow.BinaryTypes.String, nil
	case frame.KindBinary:
		return arrow.BinaryTypes.Binary, nil
	case frame.KindDate:
		return arrow.FixedWidthTypes.Date32, nil
	case frame.KindTimestamp:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: fd.TimeZone}, nil
	case frame.KindDecimal:
		return &arrow.Decimal128Type{Precision: int32(fd.Precision), Scale: int32(fd.Scale)}, nil
	default:
		return nil, fmt.Errorf("arrow: no mapping for column %s kind %s", fd.Name, fd.Type)
	}
}

// ToRecord builds an Arrow record from a frame, nulls intact. The caller
// owns the returned record and must Release it.
func ToRecord(f *frame.Frame) (array.Record, error) {
	schema, err := ToArrowSchema(f.Schema())
	if err != nil {
		return nil, err
	}
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	for i, fd := range f.Schema().Fields {
		if err := appendColumn(b.Field(i), fd, f.Column(i)); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func appendColumn(fb array.Builder, fd frame.Field, col frame.Column) error {
	n := col.Len()
	for r := 0; r < n; r++ {
		if col.IsNull(r) {
			fb.AppendNull()
			continue
		}
		switch c := col.(type) {
		case *frame.BoolColumn:
			v, _ := c.Get(r)
			fb.(*array.BooleanBuilder).Append(v)
		case *frame.IntColumn:
			v, _ := c.Get(r)
			switch ib := fb.(type) {
			case *array.Int8Builder:
				ib.Append(int8(v))
			case *array.Int16Builder:
				ib.Append(int16(v))
			case *array.Int32Builder:
				ib.Append(int32(v))
			case *array.Int64Builder:
				ib.Append(v)
			}
		case *frame.UintColumn:
			v, _ := c.Get(r)
			switch ub := fb.(type) {
			case *array.Uint8Builder:
				ub.Append(uint8(v))
			case *array.Uint16Builder:
				ub.Append(uint16(v))
			case *array.Uint32Builder:
				ub.Append(uint32(v))
			case *array.Uint64Builder:
				ub.Append(v)
			}
		case *frame.FloatColumn:
			v, _ := c.Get(r)
			if f32, ok := fb.(*array.Float32Builder); ok {
				f32.Append(float32(v))
			} else {
				fb.(*array.Float64Builder).Append(v)
			}
		case *frame.StringColumn:
			v, _ := c.Get(r)
			fb.(*array.StringBuilder).Append(v)
		case *frame.BytesColumn:
			v, _ := c.Get(r)
			fb.(*array.BinaryBuilder).Append(v)
		case *frame.TimeColumn:
			v, _ := c.Get(r)
			if db, ok := fb.(*array.Date32Builder); ok {
				db.Append(arrow.Date32(math.Floor(float64(v.Unix()) / 86400)))
			} else {
				fb.(*array.TimestampBuilder).Append(arrow.Timestamp(v.UnixNano()))
			}
		case *frame.DecimalColumn:
			v, _ := c.Get(r)
			scaled := v.Shift(int32(fd.Scale))
			if !scaled.IsInteger() || scaled.Cmp(maxDecimalUnscaled) > 0 || scaled.Cmp(minDecimalUnscaled) < 0 {
				return fmt.Errorf("arrow: decimal %s out of range for column %s", v, fd.Name)
			}
			fb.(*array.Decimal128Builder).Append(decimal128.FromI64(scaled.IntPart()))
		default:
			return fmt.Errorf("arrow: no mapping for column %s kind %s", fd.Name, col.Kind())
		}
	}
	return nil
}
