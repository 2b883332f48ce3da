// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CS673-Team4/calstack/models"
)

func (s *Store) CreateTeam(ctx context.Context, team models.Team) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team (id, name, code, created_at)
		VALUES ($1, $2, $3, $4)
	`, team.ID, team.Name, team.Code, team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	for _, email := range team.Members {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO team_member (team_id, email, joined_at)
			VALUES ($1, $2, $3)
		`, team.ID, email, team.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetTeam(ctx context.Context, teamID string) (models.Team, error) {
	return s.getTeamBy(ctx, "id", teamID)
}

func (s *Store) GetTeamByCode(ctx context.Context, code string) (models.Team, error) {
	return s.getTeamBy(ctx, "code", code)
}

func (s *Store) getTeamBy(ctx context.Context, column, value string) (models.Team, error) {
	var team models.Team
	query := fmt.Sprintf(`SELECT id, name, code, created_at FROM team WHERE %s = $1`, column)
	err := s.db.QueryRowContext(ctx, query, value).
		Scan(&team.ID, &team.Name, &team.Code, &team.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Team{}, fmt.Errorf("%w: team %s=%s", models.ErrNotFound, column, value)
	}
	if err != nil {
		return models.Team{}, fmt.Errorf("failed to query team: %w", err)
	}

	team.Members, err = s.teamMembers(ctx, team.ID)
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (s *Store) teamMembers(ctx context.Context, teamID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM team_member WHERE team_id = $1 ORDER BY joined_at, email
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, email)
	}
	return members, rows.Err()
}

func (s *Store) TeamsForMember(ctx context.Context, email string) ([]models.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.code, t.created_at
		FROM team t
		JOIN team_member m ON t.id = m.team_id
		WHERE m.email = $1
		ORDER BY t.created_at
	`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Code, &team.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		teams[i].Members, err = s.teamMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (s *Store) AddMember(ctx context.Context, teamID, email string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM team WHERE id = $1)`, teamID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team %s", models.ErrNotFound, teamID)
	}

	// Rejoining is a no-op, not an error.
	var member bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_member WHERE team_id = $1 AND email = $2)`,
		teamID, email).Scan(&member)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO team_member (team_id, email, joined_at)
		VALUES ($1, $2, $3)
	`, teamID, email, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, teamID, email string) (int, error) {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM team_member WHERE team_id = $1 AND email = $2
	`, teamID, email)
	if err != nil {
		return 0, fmt.Errorf("failed to remove member: %w", err)
	}

	var remaining int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_member WHERE team_id = $1`, teamID).Scan(&remaining)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return remaining, nil
}

// DeleteTeam removes the team and all dependents explicitly. The schema also
// declares ON DELETE CASCADE, but sqlite does not enforce foreign keys by
// default, so the cascade is spelled out.
func (s *Store) DeleteTeam(ctx context.Context, teamID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM poll_ballot_slot WHERE poll_id IN (SELECT id FROM poll WHERE team_id = $1)`,
		`DELETE FROM poll_ballot WHERE poll_id IN (SELECT id FROM poll WHERE team_id = $1)`,
		`DELETE FROM poll_participant WHERE poll_id IN (SELECT id FROM poll WHERE team_id = $1)`,
		`DELETE FROM poll_slot WHERE poll_id IN (SELECT id FROM poll WHERE team_id = $1)`,
		`DELETE FROM poll WHERE team_id = $1`,
		`DELETE FROM meeting_attendee WHERE meeting_id IN (SELECT id FROM meeting WHERE team_id = $1)`,
		`DELETE FROM meeting WHERE team_id = $1`,
		`DELETE FROM busy_interval WHERE team_id = $1`,
		`DELETE FROM team_member WHERE team_id = $1`,
		`DELETE FROM team WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, teamID); err != nil {
			return fmt.Errorf("failed to cascade team delete: %w", err)
		}
	}

	return tx.Commit()
}
