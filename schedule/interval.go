// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a half-open time range [Start, End) in UTC.
// Construct through NewInterval or ParseInterval so that every interval in
// the system is already normalized before any comparison happens.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds a UTC-normalized interval.
// Zero and negative-length intervals are rejected.
func NewInterval(start, end time.Time) (Interval, error) {
	start = start.UTC()
	end = end.UTC()
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// ParseInterval parses ISO-8601 timestamps into an interval.
// Timestamps without a UTC offset are assumed to be UTC.
func ParseInterval(start, end string) (Interval, error) {
	s, err := parseInstant(start)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start: %v", ErrInvalidInterval, err)
	}
	e, err := parseInstant(end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end: %v", ErrInvalidInterval, err)
	}
	return NewInterval(s, e)
}

// parseInstant accepts RFC 3339 timestamps and the offset-less variant that
// calendar providers sometimes emit; the latter is tagged UTC.
func parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// Overlaps reports whether two half-open intervals intersect.
// Intervals that merely touch at an endpoint do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Duration returns the interval length.
func (a Interval) Duration() time.Duration {
	return a.End.Sub(a.Start)
}
