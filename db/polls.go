// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

func (s *Store) CreatePoll(ctx context.Context, poll models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, team_id, creator, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, poll.ID, poll.TeamID, poll.Creator, poll.Status, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, slot := range poll.ProposedSlots {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_slot (poll_id, position, start_at, end_at)
			VALUES ($1, $2, $3, $4)
		`, poll.ID, i, slot.Start.UTC(), slot.End.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert poll slot: %w", err)
		}
	}

	for _, email := range poll.Participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_participant (poll_id, email)
			VALUES ($1, $2)
		`, poll.ID, email)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	var poll models.Poll
	var resultStart, resultEnd, closedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, team_id, creator, status, result_start, result_end, created_at, closed_at
		FROM poll WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.TeamID, &poll.Creator, &poll.Status,
		&resultStart, &resultEnd, &poll.CreatedAt, &closedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if resultStart.Valid && resultEnd.Valid {
		poll.Result = &schedule.Interval{
			Start: resultStart.Time.UTC(),
			End:   resultEnd.Time.UTC(),
		}
	}
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		poll.ClosedAt = &t
	}

	poll.ProposedSlots, err = s.pollSlots(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	poll.Participants, err = s.pollParticipants(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	poll.Votes, err = s.pollVotes(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	return poll, nil
}

func (s *Store) pollSlots(ctx context.Context, pollID string) ([]schedule.Interval, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_at, end_at FROM poll_slot WHERE poll_id = $1 ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll slots: %w", err)
	}
	defer rows.Close()

	var slots []schedule.Interval
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("failed to scan poll slot: %w", err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		slots = append(slots, iv)
	}
	return slots, rows.Err()
}

func (s *Store) pollParticipants(ctx context.Context, pollID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM poll_participant WHERE poll_id = $1 ORDER BY email
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, email)
	}
	return participants, rows.Err()
}

func (s *Store) pollVotes(ctx context.Context, pollID string) (map[string][]schedule.Interval, error) {
	votes := make(map[string][]schedule.Interval)

	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM poll_ballot WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		votes[email] = []schedule.Interval{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slotRows, err := s.db.QueryContext(ctx, `
		SELECT email, start_at, end_at FROM poll_ballot_slot
		WHERE poll_id = $1 ORDER BY email, start_at
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballot slots: %w", err)
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var email string
		var iv schedule.Interval
		if err := slotRows.Scan(&email, &iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("failed to scan ballot slot: %w", err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		votes[email] = append(votes[email], iv)
	}
	return votes, slotRows.Err()
}

func (s *Store) PollsForTeam(ctx context.Context, teamID string) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM poll WHERE team_id = $1 ORDER BY created_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan poll id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var polls []models.Poll
	for _, id := range ids {
		poll, err := s.GetPoll(ctx, id)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

// SetVote replaces the voter's previous ballot, if any. Revoting before the
// poll closes is allowed and the latest selection wins.
func (s *Store) SetVote(ctx context.Context, pollID, email string, selected []schedule.Interval) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM poll_ballot_slot WHERE poll_id = $1 AND email = $2
	`, pollID, email)
	if err != nil {
		return fmt.Errorf("failed to clear ballot slots: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		DELETE FROM poll_ballot WHERE poll_id = $1 AND email = $2
	`, pollID, email)
	if err != nil {
		return fmt.Errorf("failed to clear ballot: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_ballot (poll_id, email, voted_at)
		VALUES ($1, $2, $3)
	`, pollID, email, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert ballot: %w", err)
	}

	for _, iv := range selected {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_ballot_slot (poll_id, email, start_at, end_at)
			VALUES ($1, $2, $3, $4)
		`, pollID, email, iv.Start.UTC(), iv.End.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert ballot slot: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) ClosePoll(ctx context.Context, pollID string, result schedule.Interval, closedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET status = $1, result_start = $2, result_end = $3, closed_at = $4
		WHERE id = $5
	`, models.StatusClosed, result.Start.UTC(), result.End.UTC(), closedAt.UTC(), pollID)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	return nil
}

func (s *Store) DeletePoll(ctx context.Context, pollID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM poll_ballot_slot WHERE poll_id = $1`,
		`DELETE FROM poll_ballot WHERE poll_id = $1`,
		`DELETE FROM poll_participant WHERE poll_id = $1`,
		`DELETE FROM poll_slot WHERE poll_id = $1`,
		`DELETE FROM poll WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, pollID); err != nil {
			return fmt.Errorf("failed to delete poll: %w", err)
		}
	}

	return tx.Commit()
}
