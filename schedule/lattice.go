// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Weekday uses Monday=0 .. Sunday=6. This is the single canonical convention
// for the whole module; callers working in time.Weekday terms translate at
// the boundary with FromTimeWeekday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// FromTimeWeekday converts the standard library's Sunday=0 convention.
func FromTimeWeekday(wd time.Weekday) Weekday {
	return Weekday((int(wd) + 6) % 7)
}

// HourWindow is one allowed [StartHour, EndHour) range of slot starts
// within a day.
type HourWindow struct {
	StartHour int
	EndHour   int
}

// Generate produces the deterministic candidate slot lattice for a window.
//
// windowStart is truncated to the top of its hour in UTC. For each day offset
// 0..windowDays-1 whose weekday is allowed, slot starts walk from startHour
// in durationMinutes steps while they remain before endHour; each start
// yields a slot of exactly durationMinutes. Output is strictly chronological.
//
// endHour <= startHour contributes zero slots for the day, and an empty
// weekday set yields an empty lattice; neither is an error. A non-positive
// duration is a programmer error and panics.
func Generate(windowStart time.Time, windowDays int, allowedWeekdays map[Weekday]bool, startHour, endHour, durationMinutes int) []Interval {
	return GenerateWindows(windowStart, windowDays, allowedWeekdays,
		[]HourWindow{{StartHour: startHour, EndHour: endHour}}, durationMinutes)
}

// GenerateWindows is the disjoint-ranges variant of Generate: each day
// evaluates every hour window with the same stepping rules, then the day's
// slots are re-sorted by start time before moving on.
func GenerateWindows(windowStart time.Time, windowDays int, allowedWeekdays map[Weekday]bool, windows []HourWindow, durationMinutes int) []Interval {
	if durationMinutes <= 0 {
		panic(fmt.Sprintf("schedule: non-positive slot duration %d", durationMinutes))
	}

	anchor := windowStart.UTC().Truncate(time.Hour)
	step := time.Duration(durationMinutes) * time.Minute

	var lattice []Interval
	for offset := 0; offset < windowDays; offset++ {
		day := anchor.AddDate(0, 0, offset)
		if !allowedWeekdays[FromTimeWeekday(day.Weekday())] {
			continue
		}

		y, m, d := day.Date()
		var daySlots []Interval
		for _, w := range windows {
			limit := time.Date(y, m, d, w.EndHour, 0, 0, 0, time.UTC)
			for t := time.Date(y, m, d, w.StartHour, 0, 0, 0, time.UTC); t.Before(limit); t = t.Add(step) {
				daySlots = append(daySlots, Interval{Start: t, End: t.Add(step)})
			}
		}

		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].Start.Before(daySlots[j].Start)
		})
		lattice = append(lattice, daySlots...)
	}

	return lattice
}
