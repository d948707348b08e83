package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFieldType parses a textual column type as used in config files.
// Plain kinds use their Kind name ("int64", "bool", "string", ...);
// timestamps may carry a zone as "timestamp[Europe/Copenhagen]"; decimals
// carry precision and scale as "decimal(10,2)".
func ParseFieldType(s string) (Field, error) {
	var f Field
	f.Nullable = true
	t := strings.TrimSpace(s)

	if strings.HasPrefix(t, "decimal(") && strings.HasSuffix(t, ")") {
		args := strings.Split(t[len("decimal(") : len(t)-1], ",")
		if len(args) != 2 {
			return f, fmt.Errorf("bad decimal type %q: want decimal(precision,scale)", s)
		}
		p, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return f, fmt.Errorf("bad decimal precision in %q: %w", s, err)
		}
		sc, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return f, fmt.Errorf("bad decimal scale in %q: %w", s, err)
		}
		if p <= 0 || sc < 0 || sc > p {
			return f, fmt.Errorf("bad decimal type %q: need precision > 0 and 0 <= scale <= precision", s)
		}
		f.Type, f.Precision, f.Scale = KindDecimal, p, sc
		return f, nil
	}

	if strings.HasPrefix(t, "timestamp[") && strings.HasSuffix(t, "]") {
		zone := strings.TrimSpace(t[len("timestamp[") : len(t)-1])
		if zone == "" {
			return f, fmt.Errorf("bad timestamp type %q: empty time zone", s)
		}
		f.Type, f.TimeZone = KindTimestamp, zone
		return f, nil
	}

	for k, name := range kindNames {
		if k == KindInvalid || k == KindAny {
			continue
		}
		if t == name {
			f.Type = k
			return f, nil
		}
	}
	return f, fmt.Errorf("unknown column type %q", s)
}
