// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package consensus

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/notify"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/store"
)

// Engine runs the poll lifecycle: create, accumulate votes, and close with a
// plurality-with-random-tiebreak winner the moment every participant has
// voted. Closure emits a Meeting and triggers the notifier.
type Engine struct {
	polls    store.PollStore
	meetings store.MeetingStore
	teams    store.TeamStore
	notifier notify.Notifier

	// rand.Rand is not safe for concurrent use; rngMu covers draws from
	// closures of different polls racing each other.
	rngMu sync.Mutex
	rng   *rand.Rand

	// Vote-then-evaluate-closure must be atomic per poll, or two concurrent
	// final votes race two closures into two meetings.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngine wires the engine's collaborators. rng seeds the tie-break; nil
// falls back to a time-seeded source. Tests pass a fixed seed.
func NewEngine(polls store.PollStore, meetings store.MeetingStore, teams store.TeamStore, notifier notify.Notifier, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Engine{
		polls:    polls,
		meetings: meetings,
		teams:    teams,
		notifier: notifier,
		rng:      rng,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (e *Engine) pollLock(pollID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[pollID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[pollID] = l
	}
	return l
}

// CreatePoll opens a poll over a non-empty proposal list for a non-empty
// participant set.
func (e *Engine) CreatePoll(ctx context.Context, teamID string, slots []schedule.Interval, participants []string, creator string) (models.Poll, error) {
	if len(slots) == 0 {
		return models.Poll{}, fmt.Errorf("%w: proposed slots cannot be empty", models.ErrValidation)
	}
	if len(participants) == 0 {
		return models.Poll{}, fmt.Errorf("%w: participant set cannot be empty", models.ErrValidation)
	}

	poll := models.Poll{
		ID:            uuid.NewString(),
		TeamID:        teamID,
		Creator:       creator,
		ProposedSlots: slots,
		Participants:  participants,
		Votes:         map[string][]schedule.Interval{},
		Status:        models.StatusOpen,
		CreatedAt:     time.Now().UTC(),
	}

	if err := e.polls.CreatePoll(ctx, poll); err != nil {
		return models.Poll{}, err
	}

	slog.Info("poll created", "poll_id", poll.ID, "team_id", teamID, "creator", creator,
		"slots", len(slots), "participants", len(participants))
	return poll, nil
}

// Vote records (or overwrites) a participant's selection, then closes the
// poll if every participant has now voted. Returns whether closure happened.
func (e *Engine) Vote(ctx context.Context, pollID, email string, selection []schedule.Interval) (bool, error) {
	lock := e.pollLock(pollID)
	lock.Lock()
	defer lock.Unlock()

	poll, err := e.polls.GetPoll(ctx, pollID)
	if err != nil {
		return false, err
	}
	if poll.Status != models.StatusOpen {
		return false, fmt.Errorf("%w: poll %s is closed", models.ErrNotFound, pollID)
	}
	if !contains(poll.Participants, email) {
		return false, fmt.Errorf("%w: %s is not a participant of poll %s", models.ErrUnauthorized, email, pollID)
	}
	for _, slot := range selection {
		if !containsSlot(poll.ProposedSlots, slot) {
			return false, fmt.Errorf("%w: slot %s is not proposed by poll %s",
				models.ErrValidation, slot.Start.Format(time.RFC3339), pollID)
		}
	}

	if err := e.polls.SetVote(ctx, pollID, email, selection); err != nil {
		return false, err
	}
	if poll.Votes == nil {
		poll.Votes = map[string][]schedule.Interval{}
	}
	poll.Votes[email] = selection

	if !allVoted(poll) {
		slog.Info("vote recorded", "poll_id", pollID, "voter", email,
			"votes", len(poll.Votes), "participants", len(poll.Participants))
		return false, nil
	}

	if err := e.close(ctx, poll); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePoll removes a poll; only its creator may.
func (e *Engine) DeletePoll(ctx context.Context, pollID, requester string) error {
	poll, err := e.polls.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.Creator != requester {
		return fmt.Errorf("%w: only the creator may delete poll %s", models.ErrUnauthorized, pollID)
	}
	return e.polls.DeletePoll(ctx, pollID)
}

// close tallies votes by slot identity, picks the winner, marks the poll
// closed, emits the meeting, and fires the notifier. Meeting emission and
// notification failures are logged; they never unwind the closure.
func (e *Engine) close(ctx context.Context, poll models.Poll) error {
	winner := e.tallyWinner(poll)
	closedAt := time.Now().UTC()

	if err := e.polls.ClosePoll(ctx, poll.ID, winner, closedAt); err != nil {
		return err
	}
	slog.Info("poll closed", "poll_id", poll.ID, "winner_start", winner.Start, "winner_end", winner.End)

	meeting := models.Meeting{
		ID:        uuid.NewString(),
		TeamID:    poll.TeamID,
		Slot:      winner,
		Attendees: append([]string(nil), poll.Participants...),
		PollID:    poll.ID,
		CreatedAt: closedAt,
	}
	if err := e.meetings.CreateMeeting(ctx, meeting); err != nil {
		slog.Error("failed to emit meeting for closed poll", "poll_id", poll.ID, "error", err)
		return nil
	}

	teamName := ""
	if team, err := e.teams.GetTeam(ctx, poll.TeamID); err == nil {
		teamName = team.Name
	}
	if err := e.notifier.Notify(ctx, meeting, meeting.Attendees, teamName); err != nil {
		slog.Error("meeting notification failed", "meeting_id", meeting.ID, "error", err)
	}
	return nil
}

// slotKey identifies a slot by its instants, so independently constructed
// intervals with equal start/end land in one tally bucket.
type slotKey struct {
	start, end int64
}

func keyOf(slot schedule.Interval) slotKey {
	return slotKey{start: slot.Start.UnixNano(), end: slot.End.UnixNano()}
}

// tallyWinner applies plurality-with-random-tiebreak. Ties are common with
// small groups; choosing uniformly keeps the chronologically-first slot from
// being systematically favored. If nobody selected anything, every proposed
// slot ties at zero.
func (e *Engine) tallyWinner(poll models.Poll) schedule.Interval {
	tally := make(map[slotKey]int)
	slotFor := make(map[slotKey]schedule.Interval)
	for _, selection := range poll.Votes {
		for _, slot := range selection {
			k := keyOf(slot)
			tally[k]++
			slotFor[k] = slot
		}
	}
	if len(tally) == 0 {
		for _, slot := range poll.ProposedSlots {
			k := keyOf(slot)
			tally[k] = 0
			slotFor[k] = slot
		}
	}

	maxVotes := -1
	for _, n := range tally {
		if n > maxVotes {
			maxVotes = n
		}
	}

	var winners []schedule.Interval
	for k, n := range tally {
		if n == maxVotes {
			winners = append(winners, slotFor[k])
		}
	}
	// Deterministic order before drawing keeps seeded runs reproducible.
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Start.Before(winners[j].Start)
	})

	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return winners[e.rng.Intn(len(winners))]
}

func allVoted(poll models.Poll) bool {
	for _, p := range poll.Participants {
		if _, ok := poll.Votes[p]; !ok {
			return false
		}
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsSlot(slots []schedule.Interval, slot schedule.Interval) bool {
	k := keyOf(slot)
	for _, s := range slots {
		if keyOf(s) == k {
			return true
		}
	}
	return false
}
