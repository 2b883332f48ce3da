// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import "testing"

func TestFilterFreeRemovesConflictingSlots(t *testing.T) {
	// The canonical two-person scenario: alice is busy 10-11, so the 10-11
	// candidate drops out and 9-10 / 11-12 survive in order.
	candidates := Generate(monday, 1, allWeekdays(), 9, 12, 60)

	busy := map[string][]Interval{
		"alice@example.com": {mustInterval(t, "2024-01-15T10:00:00Z", "2024-01-15T11:00:00Z")},
	}
	participants := []string{"alice@example.com", "bob@example.com"}

	free := FilterFree(candidates, busy, participants)

	if len(free) != 2 {
		t.Fatalf("got %d free slots, want 2", len(free))
	}
	if free[0].Start.Hour() != 9 || free[1].Start.Hour() != 11 {
		t.Errorf("free slots at hours %d,%d; want 9,11", free[0].Start.Hour(), free[1].Start.Hour())
	}
}

func TestFilterFreeIsOrderPreservingSubsequence(t *testing.T) {
	candidates := Generate(monday, 3, allWeekdays(), 8, 18, 60)
	busy := map[string][]Interval{
		"a@x.com": {
			mustInterval(t, "2024-01-15T09:00:00Z", "2024-01-15T11:30:00Z"),
			mustInterval(t, "2024-01-16T14:00:00Z", "2024-01-16T15:00:00Z"),
		},
		"b@x.com": {mustInterval(t, "2024-01-17T08:00:00Z", "2024-01-17T18:00:00Z")},
	}

	free := FilterFree(candidates, busy, []string{"a@x.com", "b@x.com"})

	// Every output slot must appear in the input, in the same relative order.
	j := 0
	for _, slot := range free {
		for j < len(candidates) && !candidates[j].Start.Equal(slot.Start) {
			j++
		}
		if j == len(candidates) {
			t.Fatalf("slot %v not found in candidate order", slot)
		}
		j++
	}
}

func TestFilterFreeVacuousFreedom(t *testing.T) {
	candidates := Generate(monday, 1, allWeekdays(), 9, 12, 60)

	// never-synced participant has no busy entry at all
	free := FilterFree(candidates, map[string][]Interval{}, []string{"ghost@example.com"})

	if len(free) != len(candidates) {
		t.Errorf("participant with no busy record filtered %d slots", len(candidates)-len(free))
	}
}

func TestFilterFreeTouchingBusyDoesNotConflict(t *testing.T) {
	candidates := Generate(monday, 1, allWeekdays(), 9, 10, 60)
	busy := map[string][]Interval{
		"a@x.com": {mustInterval(t, "2024-01-15T10:00:00Z", "2024-01-15T11:00:00Z")},
	}

	free := FilterFree(candidates, busy, []string{"a@x.com"})
	if len(free) != 1 {
		t.Errorf("slot ending exactly when busy starts was filtered; got %d slots", len(free))
	}
}

func TestFilterFreeNoParticipants(t *testing.T) {
	candidates := Generate(monday, 1, allWeekdays(), 9, 12, 60)
	free := FilterFree(candidates, nil, nil)
	if len(free) != len(candidates) {
		t.Errorf("empty participant set should keep all %d candidates, got %d", len(candidates), len(free))
	}
}
