// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"testing"
	"time"
)

// 2024-01-15 is a Monday.
var monday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func allWeekdays() map[Weekday]bool {
	return map[Weekday]bool{
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
		Friday: true, Saturday: true, Sunday: true,
	}
}

func TestGenerateSingleDayHourly(t *testing.T) {
	slots := Generate(monday, 1, allWeekdays(), 9, 12, 60)

	wantStarts := []int{9, 10, 11}
	if len(slots) != len(wantStarts) {
		t.Fatalf("got %d slots, want %d", len(slots), len(wantStarts))
	}
	for i, h := range wantStarts {
		want := time.Date(2024, 1, 15, h, 0, 0, 0, time.UTC)
		if !slots[i].Start.Equal(want) {
			t.Errorf("slot %d starts %v, want %v", i, slots[i].Start, want)
		}
		if slots[i].Duration() != time.Hour {
			t.Errorf("slot %d duration %v, want 1h", i, slots[i].Duration())
		}
	}
}

func TestGenerateSubHourSteps(t *testing.T) {
	// 30-minute slots between 9 and 10 step by duration, not by hour.
	slots := Generate(monday, 1, allWeekdays(), 9, 10, 30)

	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if got := slots[1].Start.Minute(); got != 30 {
		t.Errorf("second slot starts at minute %d, want 30", got)
	}
}

func TestGenerateSkipsDisallowedWeekdays(t *testing.T) {
	// Only Wednesday allowed over a Monday-anchored week.
	slots := Generate(monday, 7, map[Weekday]bool{Wednesday: true}, 9, 11, 60)

	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	for _, s := range slots {
		if FromTimeWeekday(s.Start.Weekday()) != Wednesday {
			t.Errorf("slot on %v is not a Wednesday", s.Start)
		}
	}
}

func TestGenerateEmptyWeekdaysYieldsEmptyLattice(t *testing.T) {
	slots := Generate(monday, 7, map[Weekday]bool{}, 9, 17, 60)
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0", len(slots))
	}
}

func TestGenerateInvertedHourRangeYieldsNoSlots(t *testing.T) {
	slots := Generate(monday, 3, allWeekdays(), 17, 9, 60)
	if len(slots) != 0 {
		t.Errorf("got %d slots for endHour <= startHour, want 0", len(slots))
	}
}

func TestGenerateTruncatesWindowStart(t *testing.T) {
	mid := time.Date(2024, 1, 15, 9, 47, 13, 0, time.UTC)
	slots := Generate(mid, 1, allWeekdays(), 9, 12, 60)

	want := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	if len(slots) == 0 || !slots[0].Start.Equal(want) {
		t.Fatalf("first slot %+v, want start %v", slots, want)
	}
}

func TestGenerateDeterministicAndChronological(t *testing.T) {
	a := Generate(monday, 14, allWeekdays(), 8, 18, 45)
	b := Generate(monday, 14, allWeekdays(), 8, 18, 45)

	if len(a) != len(b) {
		t.Fatalf("two runs disagree on length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) || !a[i].End.Equal(b[i].End) {
			t.Fatalf("run mismatch at %d: %v vs %v", i, a[i], b[i])
		}
		if i > 0 && !a[i-1].Start.Before(a[i].Start) {
			t.Fatalf("output not strictly chronological at %d: %v then %v", i, a[i-1].Start, a[i].Start)
		}
	}
}

func TestGenerateWindowsDisjointRanges(t *testing.T) {
	windows := []HourWindow{
		{StartHour: 17, EndHour: 19}, // listed out of order on purpose
		{StartHour: 7, EndHour: 9},
	}
	slots := GenerateWindows(monday, 1, allWeekdays(), windows, 60)

	wantHours := []int{7, 8, 17, 18}
	if len(slots) != len(wantHours) {
		t.Fatalf("got %d slots, want %d", len(slots), len(wantHours))
	}
	for i, h := range wantHours {
		if slots[i].Start.Hour() != h {
			t.Errorf("slot %d at hour %d, want %d (day must be re-sorted)", i, slots[i].Start.Hour(), h)
		}
	}
}

func TestGeneratePanicsOnNonPositiveDuration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive duration")
		}
	}()
	Generate(monday, 1, allWeekdays(), 9, 12, 0)
}

func TestFromTimeWeekday(t *testing.T) {
	cases := []struct {
		in   time.Weekday
		want Weekday
	}{
		{time.Monday, Monday},
		{time.Sunday, Sunday},
		{time.Saturday, Saturday},
	}
	for _, tc := range cases {
		if got := FromTimeWeekday(tc.in); got != tc.want {
			t.Errorf("FromTimeWeekday(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
