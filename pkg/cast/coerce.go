package cast

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

// cellValue pulls a cell out of any column type as a plain Go value.
func cellValue(col frame.Column, i int) (any, bool) {
	switch c := col.(type) {
	case *frame.BoolColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.IntColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.UintColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.FloatColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.StringColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.BytesColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.TimeColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.DecimalColumn:
		v, ok := c.Get(i)
		return v, ok
	case *frame.AnyColumn:
		v, ok := c.Get(i)
		return v, ok
	default:
		return nil, false
	}
}

var boolWords = map[string]bool{
	"true": true, "yes": true, "1": true,
	"false": false, "no": false, "0": false,
}

func coerceBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, ok := boolWords[strings.ToLower(strings.TrimSpace(t))]
		return b, ok
	case int64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case uint64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, true
		}
	}
	return false, false
}

var intRange = map[frame.Kind][2]int64{
	frame.KindInt8:  {math.MinInt8, math.MaxInt8},
	frame.KindInt16: {math.MinInt16, math.MaxInt16},
	frame.KindInt32: {math.MinInt32, math.MaxInt32},
	frame.KindInt64: {math.MinInt64, math.MaxInt64},
}

var uintMax = map[frame.Kind]uint64{
	frame.KindUint8:  math.MaxUint8,
	frame.KindUint16: math.MaxUint16,
	frame.KindUint32: math.MaxUint32,
	frame.KindUint64: math.MaxUint64,
}

func coerceInt(v any, kind frame.Kind) (int64, bool) {
	var n int64
	switch t := v.(type) {
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		n = int64(t)
	case float64:
		if math.IsNaN(t) || t < math.MinInt64 || t > math.MaxInt64 {
			return 0, false
		}
		n = int64(t) // truncates, matching a best-effort cast
	case bool:
		if t {
			n = 1
		}
	case string:
		s := strings.TrimSpace(t)
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || math.IsNaN(f) || f < math.MinInt64 || f > math.MaxInt64 {
				return 0, false
			}
			x = int64(f)
		}
		n = x
	case decimal.Decimal:
		n = t.IntPart()
	default:
		return 0, false
	}
	r := intRange[kind]
	if n < r[0] || n > r[1] {
		return 0, false
	}
	return n, true
}

func coerceUint(v any, kind frame.Kind) (uint64, bool) {
	var n uint64
	switch t := v.(type) {
	case uint64:
		n = t
	case int64:
		if t < 0 {
			return 0, false
		}
		n = uint64(t)
	case float64:
		if math.IsNaN(t) || t < 0 || t > math.MaxUint64 {
			return 0, false
		}
		n = uint64(t)
	case bool:
		if t {
			n = 1
		}
	case string:
		s := strings.TrimSpace(t)
		x, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || math.IsNaN(f) || f < 0 || f > math.MaxUint64 {
				return 0, false
			}
			x = uint64(f)
		}
		n = x
	case decimal.Decimal:
		i := t.IntPart()
		if i < 0 {
			return 0, false
		}
		n = uint64(i)
	default:
		return 0, false
	}
	if n > uintMax[kind] {
		return 0, false
	}
	return n, true
}

func coerceFloat(v any, kind frame.Kind) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = x
	case decimal.Decimal:
		f, _ = t.Float64()
	default:
		return 0, false
	}
	if kind == frame.KindFloat32 {
		f = float64(float32(f))
	}
	return f, true
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case bool:
		return strconv.FormatBool(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case time.Time:
		return t.Format(time.RFC3339Nano), true
	case decimal.Decimal:
		return t.String(), true
	default:
		return "", false
	}
}

func coerceBytes(v any) ([]byte, bool) {
	switch t := v.(type) {
	case []byte:
		return t, true
	case string:
		return []byte(t), true
	default:
		return nil, false
	}
}

// coerceTime yields a wall-clock or instant value plus whether the source
// carried a zone. Parsed datetime cells store naive readings with a UTC
// location, so a UTC location is read as "no zone attached".
func coerceTime(v any) (t time.Time, aware bool, ok bool) {
	switch x := v.(type) {
	case time.Time:
		return x, x.Location() != time.UTC, true
	case string:
		return ParseTime(x)
	case float64:
		return fromExcelSerial(x), false, true
	case int64:
		return fromExcelSerial(float64(x)), false, true
	case uint64:
		return fromExcelSerial(float64(x)), false, true
	default:
		return time.Time{}, false, false
	}
}

// coerceDecimal goes through the value's exact text representation, never a
// binary float intermediate, then rounds half-to-even to the field's scale.
// The skip result marks NaN cells, which become missing without an issue.
func coerceDecimal(v any, fd frame.Field) (d decimal.Decimal, skip bool, ok bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		d = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, true, false
		}
		x, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false, false
		}
		d = x
	case float64:
		if math.IsNaN(t) {
			return decimal.Decimal{}, true, false
		}
		x, err := decimal.NewFromString(strconv.FormatFloat(t, 'f', -1, 64))
		if err != nil {
			return decimal.Decimal{}, false, false
		}
		d = x
	case int64:
		d = decimal.NewFromInt(t)
	case uint64:
		x, err := decimal.NewFromString(strconv.FormatUint(t, 10))
		if err != nil {
			return decimal.Decimal{}, false, false
		}
		d = x
	case bool:
		if t {
			d = decimal.NewFromInt(1)
		} else {
			d = decimal.NewFromInt(0)
		}
	default:
		return decimal.Decimal{}, false, false
	}
	d = d.RoundBank(int32(fd.Scale))
	if fd.Precision > 0 && decimalDigits(d, fd.Scale) > fd.Precision {
		return decimal.Decimal{}, false, false
	}
	return d, false, true
}

// decimalDigits counts the digits d occupies at the given scale. RoundBank
// can leave the exponent above -scale, so pad up to the full scale.
func decimalDigits(d decimal.Decimal, scale int) int {
	text := d.Coefficient().Text(10)
	digits := len(text)
	if d.IsNegative() {
		digits--
	}
	return digits + int(d.Exponent()) + scale
}
