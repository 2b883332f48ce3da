// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/CS673-Team4/calstack/schedule"
)

func (s *Store) GetBusy(ctx context.Context, teamID, email string) ([]schedule.Interval, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_at, end_at FROM busy_interval
		WHERE team_id = $1 AND email = $2
		ORDER BY start_at
	`, teamID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query busy intervals: %w", err)
	}
	defer rows.Close()

	busy := []schedule.Interval{}
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("failed to scan busy interval: %w", err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		busy = append(busy, iv)
	}
	return busy, rows.Err()
}

// SetBusy replaces the caller's stored intervals wholesale, matching the
// sync flow where each refresh supersedes the previous snapshot.
func (s *Store) SetBusy(ctx context.Context, teamID, email string, busy []schedule.Interval) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM busy_interval WHERE team_id = $1 AND email = $2
	`, teamID, email)
	if err != nil {
		return fmt.Errorf("failed to clear busy intervals: %w", err)
	}

	for _, iv := range busy {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO busy_interval (team_id, email, start_at, end_at)
			VALUES ($1, $2, $3, $4)
		`, teamID, email, iv.Start.UTC(), iv.End.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert busy interval: %w", err)
		}
	}

	return tx.Commit()
}

// GetBusyForMany returns a map with an entry for every requested email, so a
// member with no stored intervals shows up as an empty slice rather than a
// missing key.
func (s *Store) GetBusyForMany(ctx context.Context, teamID string, emails []string) (map[string][]schedule.Interval, error) {
	result := make(map[string][]schedule.Interval, len(emails))
	for _, email := range emails {
		busy, err := s.GetBusy(ctx, teamID, email)
		if err != nil {
			return nil, err
		}
		result[email] = busy
	}
	return result, nil
}
