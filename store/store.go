// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

// TeamStore persists teams and membership. Lookups for missing teams return
// an error wrapping models.ErrNotFound.
type TeamStore interface {
	CreateTeam(ctx context.Context, team models.Team) error
	GetTeam(ctx context.Context, teamID string) (models.Team, error)
	GetTeamByCode(ctx context.Context, code string) (models.Team, error)
	TeamsForMember(ctx context.Context, email string) ([]models.Team, error)
	AddMember(ctx context.Context, teamID, email string) error

	// RemoveMember reports how many members remain so the caller can decide
	// whether the team cascade applies.
	RemoveMember(ctx context.Context, teamID, email string) (remaining int, err error)

	// DeleteTeam cascades to the team's polls, meetings, and busy records.
	DeleteTeam(ctx context.Context, teamID string) error
}

// AvailabilityStore holds per-(team, member) busy intervals. Reads never
// error for "no data yet": absent keys yield empty slices. Writes replace
// wholesale; concurrent writers to one key race last-write-wins by policy.
type AvailabilityStore interface {
	GetBusy(ctx context.Context, teamID, email string) ([]schedule.Interval, error)
	SetBusy(ctx context.Context, teamID, email string, busy []schedule.Interval) error

	// GetBusyForMany maps every requested email, including members with no
	// record, which map to an empty slice rather than being omitted.
	GetBusyForMany(ctx context.Context, teamID string, emails []string) (map[string][]schedule.Interval, error)
}

// PollStore persists polls and their votes.
type PollStore interface {
	CreatePoll(ctx context.Context, poll models.Poll) error
	GetPoll(ctx context.Context, pollID string) (models.Poll, error)
	PollsForTeam(ctx context.Context, teamID string) ([]models.Poll, error)

	// SetVote replaces any prior selection by the voter.
	SetVote(ctx context.Context, pollID, email string, selection []schedule.Interval) error

	ClosePoll(ctx context.Context, pollID string, result schedule.Interval, closedAt time.Time) error
	DeletePoll(ctx context.Context, pollID string) error
}

// MeetingStore persists finalized meetings.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, meeting models.Meeting) error
	GetMeeting(ctx context.Context, meetingID string) (models.Meeting, error)
	MeetingsForTeam(ctx context.Context, teamID string) ([]models.Meeting, error)
	DeleteMeeting(ctx context.Context, meetingID string) error
}

// Store is the full persistence surface the application wires together.
type Store interface {
	TeamStore
	AvailabilityStore
	PollStore
	MeetingStore
}
