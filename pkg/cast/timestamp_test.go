package cast

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		in    string
		want  time.Time
		aware bool
	}{
		{"2024-01-01 10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), false},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-01-01 10:00:00.5", time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.UTC), false},
		{"2024-01-01T12:00:00+02:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), true},
		// Excel serial: 45292 is 2024-01-01, .5 is noon
		{"45292.5", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		got, aware, ok := ParseTime(c.in)
		if !ok {
			t.Fatalf("%q: not parsed", c.in)
		}
		if aware != c.aware {
			t.Fatalf("%q: aware = %v, want %v", c.in, aware, c.aware)
		}
		if !got.UTC().Equal(c.want) {
			t.Fatalf("%q: got %v, want %v", c.in, got.UTC(), c.want)
		}
	}

	for _, bad := range []string{"", "not a date", "2024-13-40"} {
		if _, _, ok := ParseTime(bad); ok {
			t.Fatalf("%q: expected parse failure", bad)
		}
	}
}

func TestLocalizePlain(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}
	got, ambiguous := localize(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), loc)
	if ambiguous {
		t.Fatal("unexpected ambiguity")
	}
	// noon EDT is 16:00 UTC
	want := time.Date(2024, 6, 1, 16, 0, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("got %v, want %v", got.UTC(), want)
	}
}

func TestLocalizeSpringForwardGap(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}
	// 02:30 never happens on 2024-03-10; shift forward to 03:00 EDT.
	got, ambiguous := localize(time.Date(2024, 3, 10, 2, 30, 0, 0, time.UTC), loc)
	if ambiguous {
		t.Fatal("gap readings are not ambiguous")
	}
	want := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	if !got.UTC().Equal(want) {
		t.Fatalf("got %v, want %v", got.UTC(), want)
	}
	local := got.In(loc)
	if local.Hour() != 3 || local.Minute() != 0 {
		t.Fatalf("local clock = %02d:%02d, want 03:00", local.Hour(), local.Minute())
	}
}

func TestLocalizeFallBackAmbiguity(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable:", err)
	}
	// 01:30 happens twice on 2024-11-03.
	if _, ambiguous := localize(time.Date(2024, 11, 3, 1, 30, 0, 0, time.UTC), loc); !ambiguous {
		t.Fatal("expected ambiguity")
	}
}
