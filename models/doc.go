// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API,
plus the error taxonomy shared across layers.

# Domain Types

  - Team: membership set with a join code; owns polls, meetings, and
    per-member busy records
  - Poll: proposed slots, participants, accumulated votes, open/closed state
  - Meeting: a finalized slot with attendees, usually emitted by poll closure

Busy intervals and slots are schedule.Interval values: half-open UTC ranges.

# Wire Types

TimeRange carries ISO-8601 start/end strings; handlers normalize it to
schedule.Interval on ingestion (offset-less timestamps are assumed UTC).

# Error Taxonomy

	ErrValidation          → 400
	ErrUnauthorized        → 403
	ErrNotFound            → 404
	ErrUpstreamUnavailable → treated as empty data, logged
	ErrNotification        → logged only, never affects state

# Constants

Poll status values:

	StatusOpen   = "open"
	StatusClosed = "closed"
*/
package models
