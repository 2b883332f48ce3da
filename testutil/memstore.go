// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

// MemStore is an in-memory implementation of store.Store for tests. It
// mirrors the SQL store's semantics: missing availability reads yield empty
// slices, vote writes replace, team deletion cascades polls, meetings, and
// busy records.
type MemStore struct {
	mu       sync.RWMutex
	teams    map[string]models.Team
	busy     map[string][]schedule.Interval // key: teamID + "\x00" + email
	polls    map[string]models.Poll
	meetings map[string]models.Meeting
}

func NewMemStore() *MemStore {
	return &MemStore{
		teams:    make(map[string]models.Team),
		busy:     make(map[string][]schedule.Interval),
		polls:    make(map[string]models.Poll),
		meetings: make(map[string]models.Meeting),
	}
}

func busyKey(teamID, email string) string { return teamID + "\x00" + email }

// TeamStore

func (s *MemStore) CreateTeam(_ context.Context, team models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team
	return nil
}

func (s *MemStore) GetTeam(_ context.Context, teamID string) (models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[teamID]
	if !ok {
		return models.Team{}, fmt.Errorf("%w: team %s", models.ErrNotFound, teamID)
	}
	return team, nil
}

func (s *MemStore) GetTeamByCode(_ context.Context, code string) (models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, team := range s.teams {
		if team.Code == code {
			return team, nil
		}
	}
	return models.Team{}, fmt.Errorf("%w: team code %s", models.ErrNotFound, code)
}

func (s *MemStore) TeamsForMember(_ context.Context, email string) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Team
	for _, team := range s.teams {
		for _, m := range team.Members {
			if m == email {
				out = append(out, team)
				break
			}
		}
	}
	return out, nil
}

func (s *MemStore) AddMember(_ context.Context, teamID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return fmt.Errorf("%w: team %s", models.ErrNotFound, teamID)
	}
	for _, m := range team.Members {
		if m == email {
			return nil
		}
	}
	team.Members = append(team.Members, email)
	s.teams[teamID] = team
	return nil
}

func (s *MemStore) RemoveMember(_ context.Context, teamID, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return 0, fmt.Errorf("%w: team %s", models.ErrNotFound, teamID)
	}
	kept := team.Members[:0]
	for _, m := range team.Members {
		if m != email {
			kept = append(kept, m)
		}
	}
	team.Members = kept
	s.teams[teamID] = team
	return len(kept), nil
}

func (s *MemStore) DeleteTeam(_ context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, teamID)
	for id, poll := range s.polls {
		if poll.TeamID == teamID {
			delete(s.polls, id)
		}
	}
	for id, meeting := range s.meetings {
		if meeting.TeamID == teamID {
			delete(s.meetings, id)
		}
	}
	for key := range s.busy {
		if len(key) > len(teamID) && key[:len(teamID)+1] == teamID+"\x00" {
			delete(s.busy, key)
		}
	}
	return nil
}

// AvailabilityStore

func (s *MemStore) GetBusy(_ context.Context, teamID, email string) ([]schedule.Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]schedule.Interval{}, s.busy[busyKey(teamID, email)]...), nil
}

func (s *MemStore) SetBusy(_ context.Context, teamID, email string, busy []schedule.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy[busyKey(teamID, email)] = append([]schedule.Interval(nil), busy...)
	return nil
}

func (s *MemStore) GetBusyForMany(_ context.Context, teamID string, emails []string) (map[string][]schedule.Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]schedule.Interval, len(emails))
	for _, email := range emails {
		out[email] = append([]schedule.Interval{}, s.busy[busyKey(teamID, email)]...)
	}
	return out, nil
}

// PollStore

func (s *MemStore) CreatePoll(_ context.Context, poll models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.ID] = copyPoll(poll)
	return nil
}

func (s *MemStore) GetPoll(_ context.Context, pollID string) (models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return models.Poll{}, fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	return copyPoll(poll), nil
}

func (s *MemStore) PollsForTeam(_ context.Context, teamID string) ([]models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Poll
	for _, poll := range s.polls {
		if poll.TeamID == teamID {
			out = append(out, copyPoll(poll))
		}
	}
	return out, nil
}

func (s *MemStore) SetVote(_ context.Context, pollID, email string, selection []schedule.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	if poll.Votes == nil {
		poll.Votes = map[string][]schedule.Interval{}
	}
	poll.Votes[email] = append([]schedule.Interval(nil), selection...)
	s.polls[pollID] = poll
	return nil
}

func (s *MemStore) ClosePoll(_ context.Context, pollID string, result schedule.Interval, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	poll.Status = models.StatusClosed
	poll.Result = &result
	poll.ClosedAt = &closedAt
	s.polls[pollID] = poll
	return nil
}

func (s *MemStore) DeletePoll(_ context.Context, pollID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[pollID]; !ok {
		return fmt.Errorf("%w: poll %s", models.ErrNotFound, pollID)
	}
	delete(s.polls, pollID)
	return nil
}

// MeetingStore

func (s *MemStore) CreateMeeting(_ context.Context, meeting models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[meeting.ID] = meeting
	return nil
}

func (s *MemStore) GetMeeting(_ context.Context, meetingID string) (models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meeting, ok := s.meetings[meetingID]
	if !ok {
		return models.Meeting{}, fmt.Errorf("%w: meeting %s", models.ErrNotFound, meetingID)
	}
	return meeting, nil
}

func (s *MemStore) MeetingsForTeam(_ context.Context, teamID string) ([]models.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Meeting
	for _, meeting := range s.meetings {
		if meeting.TeamID == teamID {
			out = append(out, meeting)
		}
	}
	return out, nil
}

func (s *MemStore) DeleteMeeting(_ context.Context, meetingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return fmt.Errorf("%w: meeting %s", models.ErrNotFound, meetingID)
	}
	delete(s.meetings, meetingID)
	return nil
}

func copyPoll(poll models.Poll) models.Poll {
	out := poll
	out.ProposedSlots = append([]schedule.Interval(nil), poll.ProposedSlots...)
	out.Participants = append([]string(nil), poll.Participants...)
	out.Votes = make(map[string][]schedule.Interval, len(poll.Votes))
	for voter, selection := range poll.Votes {
		out.Votes[voter] = append([]schedule.Interval(nil), selection...)
	}
	return out
}
