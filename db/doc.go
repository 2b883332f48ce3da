// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the SQL-backed implementation of the store interfaces
plus schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - team: Team metadata and join code
  - team_member: Membership rows per team
  - busy_interval: Stored busy snapshots per (team, member)
  - poll: Poll metadata and lifecycle state
  - poll_slot: Proposed slots per poll, in proposal order
  - poll_participant: Required voters per poll
  - poll_ballot: One ballot per voter per poll
  - poll_ballot_slot: Slots selected on a ballot
  - meeting: Scheduled meetings, poll-derived or manual
  - meeting_attendee: Attendees per meeting

# Relationships

	team 1──* team_member
	team 1──* busy_interval
	team 1──* poll
	poll 1──* poll_slot
	poll 1──* poll_participant
	poll 1──* poll_ballot
	poll_ballot 1──* poll_ballot_slot
	team 1──* meeting
	meeting 1──* meeting_attendee

Deletes cascade explicitly in transactions; the declared ON DELETE CASCADE
clauses are not relied on because sqlite ships with foreign keys off.

# Store

Store wraps *sql.DB and satisfies store.Store. Queries use $N placeholders,
which both lib/pq and modernc sqlite accept:

	st := db.NewStore(conn)
	team, err := st.GetTeam(ctx, teamID)

All timestamps are stored and returned in UTC.
*/
package db
