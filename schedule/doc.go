// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schedule implements the availability math at the center of CalStack:
canonical busy/free intervals, the candidate slot lattice, the free-slot
filter, and proposal selection.

# Intervals

Interval is a half-open [start, end) range, always in UTC. Normalization
happens at construction (NewInterval, ParseInterval) so overlap tests never
have to reason about timezones:

	a.Overlaps(b)  ==  a.Start < b.End && b.Start < a.End

Intervals that merely touch at an endpoint do not overlap.

# Slot lattice

Generate walks a day window and emits every candidate slot permitted by the
weekday set, hour range, and duration. Output is strictly chronological --
downstream selection depends on that ordering. GenerateWindows supports
disjoint hour ranges per day (e.g. mornings 7-9 and evenings 17-21).

The package uses a single weekday convention, Monday=0 through Sunday=6;
callers translate from time.Weekday with FromTimeWeekday at the boundary.

# Filtering and selection

FilterFree keeps the candidates free for every participant. Select reduces
the free list to a bounded proposal set under one of three strategies:
earliest-first, round-robin-by-day, or uniform random sampling with an
injectable random source.

Everything in this package is a pure function of its inputs and is safe to
call concurrently.
*/
package schedule
