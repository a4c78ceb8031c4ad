package period

import (
	"testing"
	"time"

	"relatorios/internal/config"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHalfMonth(t *testing.T) {
	cases := []struct {
		name  string
		today time.Time
		start time.Time
		end   time.Time
	}{
		{name: "first half of 31-day month", today: day(2026, time.July, 10), start: day(2026, time.July, 16), end: day(2026, time.July, 31)},
		{name: "second half of 31-day month", today: day(2026, time.July, 20), start: day(2026, time.August, 1), end: day(2026, time.August, 15)},
		{name: "boundary on the 15th", today: day(2026, time.June, 15), start: day(2026, time.June, 16), end: day(2026, time.June, 30)},
		{name: "february", today: day(2026, time.February, 3), start: day(2026, time.February, 16), end: day(2026, time.February, 28)},
		{name: "december rollover", today: day(2026, time.December, 20), start: day(2027, time.January, 1), end: day(2027, time.January, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := Compute(config.PolicyHalfMonth, tc.today)
			if err != nil {
				t.Fatal(err)
			}
			if !w.Start.Equal(tc.start) || !w.End.Equal(tc.end) {
				t.Fatalf("got [%s, %s] want [%s, %s]", w.Start, w.End, tc.start, tc.end)
			}
		})
	}
}

func TestRolling14(t *testing.T) {
	w, err := Compute(config.PolicyRolling14, day(2026, time.March, 5))
	if err != nil {
		t.Fatal(err)
	}
	if !w.Start.Equal(day(2026, time.March, 5)) || !w.End.Equal(day(2026, time.March, 19)) {
		t.Fatalf("unexpected window: %+v", w)
	}
	if w.String() != "05/03/2026 a 19/03/2026" {
		t.Fatalf("got %q", w.String())
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		today time.Time
		want  string
	}{
		{today: day(2026, time.January, 1), want: "2026Q1"},
		{today: day(2026, time.March, 31), want: "2026Q1"},
		{today: day(2026, time.April, 1), want: "2026Q2"},
		{today: day(2026, time.September, 10), want: "2026Q3"},
		{today: day(2026, time.December, 20), want: "2026Q4"},
	}
	for _, tc := range cases {
		if got := Label(tc.today); got != tc.want {
			t.Fatalf("Label(%s) = %q want %q", tc.today, got, tc.want)
		}
	}
}

func TestComputeUnknownPolicy(t *testing.T) {
	if _, err := Compute("weekly", day(2026, time.March, 5)); err == nil {
		t.Fatal("expected error")
	}
}
