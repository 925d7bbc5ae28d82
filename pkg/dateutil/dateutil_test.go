package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestAddDays(t *testing.T) {
	t.Parallel()

	base := date(2024, time.January, 1, 9, 30)

	got := AddDays(base, 7)
	want := date(2024, time.January, 8, 9, 30)
	if !got.Equal(want) {
		t.Errorf("AddDays(+7) = %v, want %v", got, want)
	}

	got = AddDays(base, -1)
	want = date(2023, time.December, 31, 9, 30)
	if !got.Equal(want) {
		t.Errorf("AddDays(-1) = %v, want %v", got, want)
	}

	// Month rollover.
	got = AddDays(date(2024, time.February, 28, 0, 0), 2)
	want = date(2024, time.March, 1, 0, 0)
	if !got.Equal(want) {
		t.Errorf("AddDays over leap day = %v, want %v", got, want)
	}
}

func TestIsToday(t *testing.T) {
	t.Parallel()

	now := date(2024, time.January, 8, 15, 0)

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"same day, earlier hour", date(2024, time.January, 8, 0, 0), true},
		{"same day, later hour", date(2024, time.January, 8, 23, 59), true},
		{"previous day", date(2024, time.January, 7, 23, 59), false},
		{"next day", date(2024, time.January, 9, 0, 0), false},
		{"same day-of-month, other month", date(2024, time.February, 8, 15, 0), false},
	}

	for _, tc := range cases {
		if got := IsToday(tc.t, now); got != tc.want {
			t.Errorf("%s: IsToday = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDifferenceInDays_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, time.January, 8, 0, 1), date(2024, time.January, 8, 23, 59), 0},
		{"next day, under 24h apart", date(2024, time.January, 9, 1, 0), date(2024, time.January, 8, 23, 0), 1},
		{"previous day", date(2024, time.January, 7, 23, 0), date(2024, time.January, 8, 1, 0), -1},
		{"one week", date(2024, time.January, 15, 12, 0), date(2024, time.January, 8, 6, 0), 7},
		{"across year boundary", date(2024, time.January, 2, 0, 0), date(2023, time.December, 30, 18, 0), 3},
	}

	for _, tc := range cases {
		if got := DifferenceInDays(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: DifferenceInDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDifferenceInDays_Antisymmetric(t *testing.T) {
	t.Parallel()

	a := date(2024, time.March, 10, 8, 0)
	b := date(2024, time.March, 3, 20, 0)

	if d1, d2 := DifferenceInDays(a, b), DifferenceInDays(b, a); d1 != -d2 {
		t.Errorf("DifferenceInDays not antisymmetric: %d vs %d", d1, d2)
	}
}

func TestIsBefore(t *testing.T) {
	t.Parallel()

	a := date(2024, time.January, 8, 0, 0)
	b := date(2024, time.January, 8, 0, 1)

	if !IsBefore(a, b) {
		t.Error("a should be before b")
	}
	if IsBefore(b, a) {
		t.Error("b should not be before a")
	}
	if IsBefore(a, a) {
		t.Error("IsBefore must be strict")
	}
}
