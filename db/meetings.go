// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CS673-Team4/calstack/models"
)

func (s *Store) CreateMeeting(ctx context.Context, meeting models.Meeting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	pollID := sql.NullString{String: meeting.PollID, Valid: meeting.PollID != ""}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO meeting (id, team_id, start_at, end_at, poll_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, meeting.ID, meeting.TeamID, meeting.Slot.Start.UTC(), meeting.Slot.End.UTC(),
		pollID, meeting.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}

	for _, email := range meeting.Attendees {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO meeting_attendee (meeting_id, email)
			VALUES ($1, $2)
		`, meeting.ID, email)
		if err != nil {
			return fmt.Errorf("failed to insert attendee: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetMeeting(ctx context.Context, meetingID string) (models.Meeting, error) {
	var meeting models.Meeting
	var pollID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, team_id, start_at, end_at, poll_id, created_at
		FROM meeting WHERE id = $1
	`, meetingID).Scan(&meeting.ID, &meeting.TeamID, &meeting.Slot.Start,
		&meeting.Slot.End, &pollID, &meeting.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Meeting{}, fmt.Errorf("%w: meeting %s", models.ErrNotFound, meetingID)
	}
	if err != nil {
		return models.Meeting{}, fmt.Errorf("failed to query meeting: %w", err)
	}
	meeting.Slot.Start = meeting.Slot.Start.UTC()
	meeting.Slot.End = meeting.Slot.End.UTC()
	meeting.PollID = pollID.String

	meeting.Attendees, err = s.meetingAttendees(ctx, meetingID)
	if err != nil {
		return models.Meeting{}, err
	}
	return meeting, nil
}

func (s *Store) meetingAttendees(ctx context.Context, meetingID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM meeting_attendee WHERE meeting_id = $1 ORDER BY email
	`, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendees: %w", err)
	}
	defer rows.Close()

	var attendees []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		attendees = append(attendees, email)
	}
	return attendees, rows.Err()
}

func (s *Store) MeetingsForTeam(ctx context.Context, teamID string) ([]models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM meeting WHERE team_id = $1 ORDER BY start_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan meeting id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var meetings []models.Meeting
	for _, id := range ids {
		meeting, err := s.GetMeeting(ctx, id)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, nil
}

func (s *Store) DeleteMeeting(ctx context.Context, meetingID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM meeting_attendee WHERE meeting_id = $1`, meetingID); err != nil {
		return fmt.Errorf("failed to delete attendees: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM meeting WHERE id = $1`, meetingID); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	return tx.Commit()
}
