package cast

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet date cells count days since 1899-12-30 (the usual 1900 system).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Layouts with an explicit offset mark the parsed value zone-aware.
var awareLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999 -0700",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTime reads a cell's text into a wall-clock time. Numeric text is
// treated as an Excel serial day count. The second result reports whether
// the text carried an explicit zone offset.
func ParseTime(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range awareLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromExcelSerial(serial), false, true
	}
	return time.Time{}, false, false
}

func fromExcelSerial(serial float64) time.Time {
	d := time.Duration(serial * float64(24*time.Hour))
	return excelEpoch.Add(d).Round(time.Second)
}

// localize interprets wall (a clock reading, zone ignored) as a local time
// in loc. Readings inside a spring-forward gap shift to the first instant
// after the gap; readings repeated by a fall-back overlap are ambiguous.
func localize(wall time.Time, loc *time.Location) (t time.Time, ambiguous bool) {
	utc := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.UTC)
	_, offBefore := utc.Add(-24 * time.Hour).In(loc).Zone()
	_, offAfter := utc.Add(24 * time.Hour).In(loc).Zone()
	candA := utc.Add(-time.Duration(offBefore) * time.Second)
	candB := utc.Add(-time.Duration(offAfter) * time.Second)
	okA := sameWall(candA.In(loc), utc)
	okB := sameWall(candB.In(loc), utc)
	switch {
	case okA && okB:
		if candA.Equal(candB) {
			return candA, false
		}
		return time.Time{}, true
	case okA:
		return candA, false
	case okB:
		return candB, false
	default:
		return gapEnd(utc, loc, offBefore), false
	}
}

func sameWall(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day() &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second() &&
		a.Nanosecond() == b.Nanosecond()
}

// gapEnd finds the transition instant whose gap swallowed the wall reading.
// At that instant the clock shows the first valid local time past the gap.
func gapEnd(utc time.Time, loc *time.Location, offBefore int) time.Time {
	lo := utc.Add(-48 * time.Hour)
	hi := utc.Add(48 * time.Hour)
	for i := 0; i < 64 && hi.Sub(lo) > 0; i++ {
		mid := lo.Add(hi.Sub(lo) / 2)
		if _, off := mid.In(loc).Zone(); off == offBefore {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}
