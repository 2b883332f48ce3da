// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"math/rand"
	"sort"
	"time"
)

// Selection strategy constants
const (
	StrategyEarliest      = "earliest"
	StrategyRoundRobinDay = "round_robin_by_day"
	StrategyRandom        = "random"
)

// Select reduces a chronological free-slot list to at most count proposals.
// The result length is always min(count, len(freeSlots)).
//
// rng is only consulted by StrategyRandom; passing nil falls back to a
// time-seeded source. Tests inject a seeded *rand.Rand for reproducibility.
// Random output is in sampling order, not chronological order; callers
// needing display order must re-sort.
func Select(freeSlots []Interval, strategy string, count int, rng *rand.Rand) []Interval {
	if count < 0 {
		count = 0
	}
	if count > len(freeSlots) {
		count = len(freeSlots)
	}

	switch strategy {
	case StrategyRoundRobinDay:
		return roundRobinByDay(freeSlots, count)
	case StrategyRandom:
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		picked := rng.Perm(len(freeSlots))[:count]
		out := make([]Interval, 0, count)
		for _, i := range picked {
			out = append(out, freeSlots[i])
		}
		return out
	default: // StrategyEarliest
		out := make([]Interval, count)
		copy(out, freeSlots[:count])
		return out
	}
}

// roundRobinByDay buckets slots by UTC calendar date and cycles the days in
// ascending order, taking the chronologically next slot from each, so that
// proposals spread across days when enough days have free slots.
func roundRobinByDay(freeSlots []Interval, count int) []Interval {
	buckets := make(map[string][]Interval)
	var days []string
	for _, slot := range freeSlots {
		day := slot.Start.Format("2006-01-02")
		if _, seen := buckets[day]; !seen {
			days = append(days, day)
		}
		buckets[day] = append(buckets[day], slot)
	}
	sort.Strings(days)

	out := make([]Interval, 0, count)
	cursor := make(map[string]int, len(days))
	for len(out) < count {
		took := false
		for _, day := range days {
			if len(out) == count {
				break
			}
			if cursor[day] < len(buckets[day]) {
				out = append(out, buckets[day][cursor[day]])
				cursor[day]++
				took = true
			}
		}
		if !took {
			break
		}
	}

	return out
}
