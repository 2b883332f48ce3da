// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package consensus

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/testutil"
)

func newTestEngine(t *testing.T, seed int64) (*Engine, *testutil.MemStore, *testutil.RecordingNotifier) {
	t.Helper()
	s := testutil.NewMemStore()
	n := &testutil.RecordingNotifier{}
	e := NewEngine(s, s, s, n, rand.New(rand.NewSource(seed)))
	return e, s, n
}

func twoSlots(t *testing.T) []schedule.Interval {
	t.Helper()
	return []schedule.Interval{
		testutil.Slot(t, "2024-01-15T09:00:00Z"),
		testutil.Slot(t, "2024-01-15T11:00:00Z"),
	}
}

func TestCreatePollValidation(t *testing.T) {
	e, _, _ := newTestEngine(t, 1)
	ctx := context.Background()

	if _, err := e.CreatePoll(ctx, "team1", nil, []string{"a@x.com"}, "a@x.com"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty slots: got %v, want ErrValidation", err)
	}
	if _, err := e.CreatePoll(ctx, "team1", twoSlots(t), nil, "a@x.com"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty participants: got %v, want ErrValidation", err)
	}

	poll, err := e.CreatePoll(ctx, "team1", twoSlots(t), []string{"a@x.com", "b@x.com"}, "a@x.com")
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	if poll.Status != models.StatusOpen {
		t.Errorf("new poll status = %q, want open", poll.Status)
	}
	if len(poll.Votes) != 0 {
		t.Errorf("new poll has %d votes, want 0", len(poll.Votes))
	}
}

func TestPollClosesExactlyWhenAllVoted(t *testing.T) {
	e, s, n := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)
	participants := []string{"a@x.com", "b@x.com", "c@x.com"}

	poll, err := e.CreatePoll(ctx, "team1", slots, participants, "a@x.com")
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	for i, voter := range participants[:2] {
		closed, err := e.Vote(ctx, poll.ID, voter, slots[:1])
		if err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
		if closed {
			t.Fatalf("poll closed after vote %d of 3", i+1)
		}
		got, _ := s.GetPoll(ctx, poll.ID)
		if got.Status != models.StatusOpen {
			t.Fatalf("poll status %q after %d votes, want open", got.Status, i+1)
		}
	}

	closed, err := e.Vote(ctx, poll.ID, "c@x.com", slots[:1])
	if err != nil {
		t.Fatalf("final vote failed: %v", err)
	}
	if !closed {
		t.Fatal("poll did not close after the final vote")
	}

	got, _ := s.GetPoll(ctx, poll.ID)
	if got.Status != models.StatusClosed {
		t.Errorf("poll status %q, want closed", got.Status)
	}
	if got.Result == nil || !got.Result.Start.Equal(slots[0].Start) {
		t.Errorf("result = %+v, want the unanimous slot %v", got.Result, slots[0].Start)
	}
	if n.Count() != 1 {
		t.Errorf("notifier called %d times, want exactly 1", n.Count())
	}
}

func TestUnanimousVoteEmitsMeeting(t *testing.T) {
	e, s, n := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com", "b@x.com"}, "a@x.com")
	e.Vote(ctx, poll.ID, "a@x.com", slots[:1])
	closed, err := e.Vote(ctx, poll.ID, "b@x.com", slots[:1])
	if err != nil || !closed {
		t.Fatalf("closure vote: closed=%v err=%v", closed, err)
	}

	meetings, _ := s.MeetingsForTeam(ctx, "team1")
	if len(meetings) != 1 {
		t.Fatalf("got %d meetings, want 1", len(meetings))
	}
	m := meetings[0]
	if !m.Slot.Start.Equal(slots[0].Start) {
		t.Errorf("meeting slot %v, want %v", m.Slot.Start, slots[0].Start)
	}
	if m.PollID != poll.ID {
		t.Errorf("meeting poll_id %q, want %q", m.PollID, poll.ID)
	}
	if len(m.Attendees) != 2 {
		t.Errorf("meeting has %d attendees, want 2", len(m.Attendees))
	}
	if n.Count() != 1 {
		t.Errorf("notifier called %d times, want 1", n.Count())
	}
}

func TestTallyCollapsesIndependentlyConstructedSlots(t *testing.T) {
	e, s, _ := newTestEngine(t, 1)
	ctx := context.Background()

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	slotA1, _ := schedule.NewInterval(base, base.Add(time.Hour))
	slotA2, _ := schedule.NewInterval(base.Add(0), base.Add(time.Hour)) // same instants, fresh value
	slotB := testutil.Slot(t, "2024-01-15T11:00:00Z")

	poll, _ := e.CreatePoll(ctx, "team1", []schedule.Interval{slotA1, slotB}, []string{"a@x.com", "b@x.com"}, "a@x.com")
	e.Vote(ctx, poll.ID, "a@x.com", []schedule.Interval{slotA1})
	closed, err := e.Vote(ctx, poll.ID, "b@x.com", []schedule.Interval{slotA2})
	if err != nil || !closed {
		t.Fatalf("closure vote: closed=%v err=%v", closed, err)
	}

	got, _ := s.GetPoll(ctx, poll.ID)
	// Both votes must land in the same bucket, so slot A wins 2-0 and no
	// tie-break is involved.
	if got.Result == nil || !got.Result.Start.Equal(base) {
		t.Errorf("result = %+v, want collapsed slot at %v", got.Result, base)
	}
}

func TestVoteOverwriteReplacesPriorSelection(t *testing.T) {
	e, s, _ := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com", "b@x.com"}, "a@x.com")

	// a first votes for slot 0, then changes to slot 1; b votes slot 1.
	if _, err := e.Vote(ctx, poll.ID, "a@x.com", slots[:1]); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := e.Vote(ctx, poll.ID, "a@x.com", slots[1:2]); err != nil {
		t.Fatalf("revote failed: %v", err)
	}
	closed, err := e.Vote(ctx, poll.ID, "b@x.com", slots[1:2])
	if err != nil || !closed {
		t.Fatalf("closure vote: closed=%v err=%v", closed, err)
	}

	got, _ := s.GetPoll(ctx, poll.ID)
	// Final tally must reflect only the latest vote per user: slot 1 wins
	// 2-0; a tie would mean the replaced vote leaked into the tally.
	if got.Result == nil || !got.Result.Start.Equal(slots[1].Start) {
		t.Errorf("result = %+v, want %v", got.Result, slots[1].Start)
	}
	if len(got.Votes["a@x.com"]) != 1 || !got.Votes["a@x.com"][0].Start.Equal(slots[1].Start) {
		t.Errorf("a's recorded vote = %+v, want only the replacement", got.Votes["a@x.com"])
	}
}

func TestNonParticipantVoteRejectedWithoutMutation(t *testing.T) {
	e, s, _ := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com", "b@x.com"}, "a@x.com")

	_, err := e.Vote(ctx, poll.ID, "intruder@x.com", slots[:1])
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}

	got, _ := s.GetPoll(ctx, poll.ID)
	if len(got.Votes) != 0 {
		t.Errorf("votes mutated by rejected voter: %+v", got.Votes)
	}
	if got.Status != models.StatusOpen {
		t.Errorf("poll status %q, want open", got.Status)
	}
}

func TestVoteOnClosedPollRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com"}, "a@x.com")
	closed, err := e.Vote(ctx, poll.ID, "a@x.com", slots[:1])
	if err != nil || !closed {
		t.Fatalf("single-participant closure: closed=%v err=%v", closed, err)
	}

	if _, err := e.Vote(ctx, poll.ID, "a@x.com", slots[:1]); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("vote on closed poll: got %v, want ErrNotFound", err)
	}
}

func TestVoteOnMissingPoll(t *testing.T) {
	e, _, _ := newTestEngine(t, 1)
	if _, err := e.Vote(context.Background(), "nope", "a@x.com", nil); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestVoteForUnproposedSlotRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com", "b@x.com"}, "a@x.com")

	rogue := testutil.Slot(t, "2024-06-01T09:00:00Z")
	if _, err := e.Vote(ctx, poll.ID, "a@x.com", []schedule.Interval{rogue}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestTieBreakIsRandomAcrossTrials(t *testing.T) {
	// a votes S1, b votes S2: a tie. Over repeated trials with different
	// seeds, each slot must win at least once.
	wins := map[int]int{}
	for seed := int64(0); seed < 40; seed++ {
		e, s, _ := newTestEngine(t, seed)
		ctx := context.Background()
		slots := twoSlots(t)

		poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com", "b@x.com"}, "a@x.com")
		e.Vote(ctx, poll.ID, "a@x.com", slots[:1])
		e.Vote(ctx, poll.ID, "b@x.com", slots[1:2])

		got, _ := s.GetPoll(ctx, poll.ID)
		if got.Result == nil {
			t.Fatalf("seed %d: poll has no result", seed)
		}
		for i, slot := range slots {
			if got.Result.Start.Equal(slot.Start) {
				wins[i]++
			}
		}
	}

	if wins[0] == 0 || wins[1] == 0 {
		t.Errorf("tie-break favored one slot systematically: wins=%v", wins)
	}
}

func TestNotifierFailureDoesNotAffectPollState(t *testing.T) {
	s := testutil.NewMemStore()
	n := &testutil.RecordingNotifier{FailWith: models.ErrNotification}
	e := NewEngine(s, s, s, n, rand.New(rand.NewSource(1)))
	ctx := context.Background()
	slots := twoSlots(t)

	poll, _ := e.CreatePoll(ctx, "team1", slots, []string{"a@x.com"}, "a@x.com")
	closed, err := e.Vote(ctx, poll.ID, "a@x.com", slots[:1])
	if err != nil || !closed {
		t.Fatalf("closure vote: closed=%v err=%v", closed, err)
	}

	got, _ := s.GetPoll(ctx, poll.ID)
	if got.Status != models.StatusClosed || got.Result == nil {
		t.Errorf("notification failure disturbed poll state: %+v", got)
	}
	meetings, _ := s.MeetingsForTeam(ctx, "team1")
	if len(meetings) != 1 {
		t.Errorf("got %d meetings after failed notification, want 1", len(meetings))
	}
}

func TestDeletePollCreatorOnly(t *testing.T) {
	e, s, _ := newTestEngine(t, 1)
	ctx := context.Background()

	poll, _ := e.CreatePoll(ctx, "team1", twoSlots(t), []string{"a@x.com", "b@x.com"}, "a@x.com")

	if err := e.DeletePoll(ctx, poll.ID, "b@x.com"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("non-creator delete: got %v, want ErrUnauthorized", err)
	}
	if err := e.DeletePoll(ctx, poll.ID, "a@x.com"); err != nil {
		t.Errorf("creator delete failed: %v", err)
	}
	if _, err := s.GetPoll(ctx, poll.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("poll still present after delete: %v", err)
	}
}

// TestConcurrentVotesProduceOneClosure drives every participant's vote from
// its own goroutine and verifies exactly one closure and one meeting.
func TestConcurrentVotesProduceOneClosure(t *testing.T) {
	e, s, n := newTestEngine(t, 1)
	ctx := context.Background()
	slots := twoSlots(t)

	numVoters := 8
	participants := make([]string, numVoters)
	for i := range participants {
		participants[i] = string(rune('a'+i)) + "@x.com"
	}

	poll, err := e.CreatePoll(ctx, "team1", slots, participants, participants[0])
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	var wg sync.WaitGroup
	var closures atomic.Int32
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			closed, err := e.Vote(ctx, poll.ID, participants[idx], slots[idx%2:idx%2+1])
			if err != nil {
				t.Errorf("voter %d failed: %v", idx, err)
				return
			}
			if closed {
				closures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if closures.Load() != 1 {
		t.Errorf("%d closures reported, want exactly 1", closures.Load())
	}
	meetings, _ := s.MeetingsForTeam(ctx, "team1")
	if len(meetings) != 1 {
		t.Errorf("%d meetings created, want exactly 1", len(meetings))
	}
	if n.Count() != 1 {
		t.Errorf("notifier called %d times, want exactly 1", n.Count())
	}
}
