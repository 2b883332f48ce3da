// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the CalStack API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, engine, provider, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /auth/session - Exchange a verified email for a session token

Teams (requires X-Session-Token):

	POST /teams              - Create team (caller becomes member)
	POST /teams/join         - Join by code
	GET  /teams              - Teams for the session user
	POST /teams/{id}/leave   - Leave; empty team cascades away
	GET  /teams/{id}/members - List members

Availability:

	GET  /teams/{id}/availability/{email} - Stored busy intervals
	PUT  /teams/{id}/availability/{email} - Replace busy intervals
	POST /teams/{id}/availability/sync    - Pull from calendar provider

Scheduling:

	POST /teams/{id}/suggest_slots - Conflict-free slot proposals

Polls and voting:

	POST   /teams/{id}/polls - Create poll over proposed slots
	GET    /teams/{id}/polls - List polls
	POST   /polls/{id}/vote  - Submit ballot (last one closes the poll)
	DELETE /polls/{id}       - Delete poll (creator only)

Meetings:

	GET    /teams/{id}/meetings - List meetings
	POST   /teams/{id}/meetings - Schedule manually
	DELETE /meetings/{id}       - Cancel meeting

# Handler Initialization

The router creates handler instances with dependency injection:

	teamHandler := handlers.NewTeamHandler(st)
	pollHandler := handlers.NewPollHandler(st, engine)

Handlers receive the store interface, the consensus engine, the busy
provider, and configuration as needed.
*/
package router
