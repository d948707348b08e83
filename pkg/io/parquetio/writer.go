package parquetio

import (
	"encoding/json"
	"fmt"
	"time"

	pw "github.com/xitongsys/parquet-go/writer"
	local "github.com/xitongsys/parquet-go-source/local"

	"github.com/skrubbel/fm-fabricutils/pkg/frame"
)

const (
	naiveLayout = "2006-01-02T15:04:05.999999999"
	dateLayout  = "2006-01-02"
)

func parquetSchemaJSON(s frame.Schema) string {
	// Minimal JSON schema for the parquet-go JSONWriter.
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, fd := range s.Fields {
		tag := "name=" + fd.Name + ", repetitiontype=OPTIONAL, type="
		switch {
		case fd.Type.IsSignedInt() || fd.Type.IsUnsignedInt():
			tag += "INT64"
		case fd.Type == frame.KindFloat32:
			tag += "FLOAT"
		case fd.Type == frame.KindFloat64:
			tag += "DOUBLE"
		case fd.Type == frame.KindBool:
			tag += "BOOLEAN"
		default:
			// strings, binary, temporal and decimal columns travel as text
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteTable writes a cast frame to a local Parquet file.
func WriteTable(path string, f *frame.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Fields))
		for i, fd := range f.Schema().Fields {
			if v, ok := cellOut(f.Column(i), fd, r); ok {
				rec[fd.Name] = v
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	return writer.WriteStop()
}

func cellOut(col frame.Column, fd frame.Field, r int) (any, bool) {
	switch c := col.(type) {
	case *frame.BoolColumn:
		if v, ok := c.Get(r); ok {
			return v, true
		}
	case *frame.IntColumn:
		if v, ok := c.Get(r); ok {
			return v, true
		}
	case *frame.UintColumn:
		if v, ok := c.Get(r); ok {
			return v, true
		}
	case *frame.FloatColumn:
		if v, ok := c.Get(r); ok {
			return v, true
		}
	case *frame.StringColumn:
		if v, ok := c.Get(r); ok {
			return v, true
		}
	case *frame.BytesColumn:
		if v, ok := c.Get(r); ok {
			return string(v), true
		}
	case *frame.TimeColumn:
		if v, ok := c.Get(r); ok {
			switch {
			case fd.Type == frame.KindDate:
				return v.Format(dateLayout), true
			case fd.TimeZone != "":
				return v.Format(time.RFC3339Nano), true
			default:
				return v.Format(naiveLayout), true
			}
		}
	case *frame.DecimalColumn:
		if v, ok := c.Get(r); ok {
			return v.StringFixed(int32(fd.Scale)), true
		}
	case *frame.AnyColumn:
		if v, ok := c.Get(r); ok {
			return fmt.Sprint(v), true
		}
	}
	return nil, false
}
