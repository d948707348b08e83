package cast

import "github.com/skrubbel/fm-fabricutils/pkg/frame"

// ProjectTypes maps original spreadsheet column names to the storage kind
// implied by the schema field their alias points at. Schema names are the
// aliases; originals that rename to a field outside the schema get no hint.
func ProjectTypes(schema frame.Schema, columnMap map[string]string) map[string]frame.Kind {
	hints := make(map[string]frame.Kind, len(columnMap))
	for original, alias := range columnMap {
		f, ok := schema.Field(alias)
		if !ok {
			continue
		}
		hints[original] = storageKind(f.Type)
	}
	return hints
}

// ProjectTypesFromSchema keys hints directly by schema field names, for
// sheets whose headers already match the target schema.
func ProjectTypesFromSchema(schema frame.Schema) map[string]frame.Kind {
	hints := make(map[string]frame.Kind, len(schema.Fields))
	for _, f := range schema.Fields {
		hints[f.Name] = storageKind(f.Type)
	}
	return hints
}

// storageKind picks the parse-time representation for a logical type.
// Integer widths and signedness survive; dates and timestamps parse into a
// nanosecond wall-clock datetime; decimals stay raw so the exact cell text
// reaches the quantizer untouched by any float round trip.
func storageKind(k frame.Kind) frame.Kind {
	switch {
	case k.IsSignedInt() || k.IsUnsignedInt() || k.IsFloat():
		return k
	case k == frame.KindBool, k == frame.KindString, k == frame.KindBinary:
		return k
	case k.IsTemporal():
		return frame.KindTimestamp
	default:
		return frame.KindAny
	}
}
