// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

// FilterFree returns the order-preserving subsequence of candidates that no
// participant's busy interval overlaps.
//
// A participant with no entry in busyByUser is treated as fully free: a
// calendar that has never synced must not block scheduling. Brute-force
// scanning is fine at this scale (days x hours candidates, single-digit
// participants).
func FilterFree(candidates []Interval, busyByUser map[string][]Interval, participants []string) []Interval {
	free := make([]Interval, 0, len(candidates))

candidates:
	for _, slot := range candidates {
		for _, email := range participants {
			for _, busy := range busyByUser[email] {
				if slot.Overlaps(busy) {
					continue candidates
				}
			}
		}
		free = append(free, slot)
	}

	return free
}
