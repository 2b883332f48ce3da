// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Teams
CREATE TABLE IF NOT EXISTS team (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_team_code ON team(code);

-- Membership
CREATE TABLE IF NOT EXISTS team_member (
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (team_id, email)
);

CREATE INDEX IF NOT EXISTS idx_team_member_email ON team_member(email);

-- Busy intervals, replaced wholesale per (team, member) on every sync
CREATE TABLE IF NOT EXISTS busy_interval (
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_busy_interval_owner ON busy_interval(team_id, email);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    creator TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    result_start TIMESTAMP,
    result_end TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    closed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_team_id ON poll(team_id);

CREATE TABLE IF NOT EXISTS poll_slot (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, position)
);

CREATE TABLE IF NOT EXISTS poll_participant (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    PRIMARY KEY (poll_id, email)
);

-- One ballot row per voter marks "has voted" even for an empty selection;
-- the selected slots hang off it.
CREATE TABLE IF NOT EXISTS poll_ballot (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (poll_id, email)
);

CREATE TABLE IF NOT EXISTS poll_ballot_slot (
    poll_id TEXT NOT NULL,
    email TEXT NOT NULL,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    FOREIGN KEY (poll_id, email) REFERENCES poll_ballot(poll_id, email) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_poll_ballot_slot ON poll_ballot_slot(poll_id, email);

-- Meetings
CREATE TABLE IF NOT EXISTS meeting (
    id TEXT PRIMARY KEY,
    team_id TEXT NOT NULL REFERENCES team(id) ON DELETE CASCADE,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    poll_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meeting_team_id ON meeting(team_id);

CREATE TABLE IF NOT EXISTS meeting_attendee (
    meeting_id TEXT NOT NULL REFERENCES meeting(id) ON DELETE CASCADE,
    email TEXT NOT NULL,
    PRIMARY KEY (meeting_id, email)
);
`
