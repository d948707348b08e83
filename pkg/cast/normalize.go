package cast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

// Normalizer makes freshly parsed sheet data cast-friendly: raw columns are
// promoted to nullable text, text cells are trimmed, and cells that are (or
// trim down to) empty strings become missing. Running it twice is a no-op.
type Normalizer struct{}

func (Normalizer) Name() string { return "normalize" }

func (Normalizer) Apply(ctx context.Context, f *frame.Frame) (*frame.Frame, error) {
	for i := 0; i < f.Cols(); i++ {
		switch col := f.Column(i).(type) {
		case *frame.AnyColumn:
			sc := frame.NewStringColumn(col.Name(), 0)
			for r := 0; r < col.Len(); r++ {
				v, ok := col.Get(r)
				if !ok {
					sc.AppendNull()
					continue
				}
				s := strings.TrimSpace(cellText(v))
				if s == "" {
					sc.AppendNull()
				} else {
					sc.Append(s)
				}
			}
			f.ReplaceColumn(i, sc)
		case *frame.StringColumn:
			for r := 0; r < col.Len(); r++ {
				v, ok := col.Get(r)
				if !ok {
					continue
				}
				s := strings.TrimSpace(v)
				if s == "" {
					col.SetNull(r)
				} else {
					col.Set(r, s)
				}
			}
		}
	}
	return f, nil
}

func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case decimal.Decimal:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
