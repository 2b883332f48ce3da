// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CalStack API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - SessionHandler: Session token issuance
  - TeamHandler: Team lifecycle and membership
  - AvailabilityHandler: Busy-interval storage and provider sync
  - SlotHandler: Free-slot suggestion
  - PollHandler: Poll lifecycle and voting
  - MeetingHandler: Meeting listing and manual scheduling

Handlers take the store interface rather than *sql.DB, so tests run against
an in-memory store:

	teamHandler := handlers.NewTeamHandler(st)

# Scheduling Flow

The core flow from calendars to a booked meeting:

	POST /teams/{id}/availability/sync   → pull busy intervals from provider
	POST /teams/{id}/suggest_slots       → lattice, filter, select ≤5 slots
	POST /teams/{id}/polls               → propose slots to the team
	POST /polls/{id}/vote                → last required ballot closes the poll

Poll closure tallies votes, breaks ties randomly, records a meeting, and
sends calendar invites through the configured notifier.

# Authentication

All routes except /health and POST /auth/session require the
X-Session-Token header, verified by middleware.RequireSession. Team-scoped
routes additionally require the caller to be a member.

# Availability Semantics

Busy intervals are half-open [start, end): an interval ending at 10:00 does
not conflict with one starting at 10:00. Members with no stored intervals
are treated as fully free. Provider failures during sync degrade to an
empty busy list rather than blocking scheduling.
*/
package handlers
