// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/testutil"
)

func TestCreateMeetingManually(t *testing.T) {
	st := testutil.NewMemStore()
	handler := NewMeetingHandler(st)
	team := testutil.CreateTestTeam(t, st, "Sched", "alice@example.com", "bob@example.com")

	req := testutil.MakeRequest("POST", "/teams/"+team.ID+"/meetings",
		models.CreateMeetingRequest{Slot: models.TimeRange{
			Start: "2024-06-03T10:00:00Z", End: "2024-06-03T11:00:00Z",
		}}, nil)
	req.SetPathValue("id", team.ID)
	req = middleware.WithSessionEmail(req, "alice@example.com")
	w := httptest.NewRecorder()

	handler.CreateMeeting(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var meeting models.Meeting
	testutil.AssertJSON(t, w, &meeting)
	if len(meeting.Attendees) != 2 {
		t.Errorf("Expected attendees to default to all members, got %v", meeting.Attendees)
	}
	if meeting.PollID != "" {
		t.Errorf("Manual meeting should not reference a poll, got %q", meeting.PollID)
	}
}

func TestCreateMeetingRejectsBadSlot(t *testing.T) {
	st := testutil.NewMemStore()
	handler := NewMeetingHandler(st)
	team := testutil.CreateTestTeam(t, st, "Sched", "alice@example.com")

	req := testutil.MakeRequest("POST", "/teams/"+team.ID+"/meetings",
		models.CreateMeetingRequest{Slot: models.TimeRange{
			Start: "2024-06-03T11:00:00Z", End: "2024-06-03T10:00:00Z",
		}}, nil)
	req.SetPathValue("id", team.ID)
	req = middleware.WithSessionEmail(req, "alice@example.com")
	w := httptest.NewRecorder()

	handler.CreateMeeting(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListAndDeleteMeetings(t *testing.T) {
	st := testutil.NewMemStore()
	handler := NewMeetingHandler(st)
	team := testutil.CreateTestTeam(t, st, "Sched", "alice@example.com")

	create := testutil.MakeRequest("POST", "/teams/"+team.ID+"/meetings",
		models.CreateMeetingRequest{Slot: models.TimeRange{
			Start: "2024-06-03T10:00:00Z", End: "2024-06-03T11:00:00Z",
		}}, nil)
	create.SetPathValue("id", team.ID)
	create = middleware.WithSessionEmail(create, "alice@example.com")
	w := httptest.NewRecorder()
	handler.CreateMeeting(w, create)

	var meeting models.Meeting
	testutil.AssertJSON(t, w, &meeting)

	list := testutil.MakeRequest("GET", "/teams/"+team.ID+"/meetings", nil, nil)
	list.SetPathValue("id", team.ID)
	list = middleware.WithSessionEmail(list, "alice@example.com")
	w = httptest.NewRecorder()
	handler.ListMeetings(w, list)
	testutil.AssertStatus(t, w, http.StatusOK)

	var meetings []models.Meeting
	testutil.AssertJSON(t, w, &meetings)
	if len(meetings) != 1 {
		t.Fatalf("Expected 1 meeting, got %d", len(meetings))
	}

	// Outsiders cannot delete
	del := testutil.MakeRequest("DELETE", "/meetings/"+meeting.ID, nil, nil)
	del.SetPathValue("id", meeting.ID)
	del = middleware.WithSessionEmail(del, "mallory@example.com")
	w = httptest.NewRecorder()
	handler.DeleteMeeting(w, del)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	del = testutil.MakeRequest("DELETE", "/meetings/"+meeting.ID, nil, nil)
	del.SetPathValue("id", meeting.ID)
	del = middleware.WithSessionEmail(del, "alice@example.com")
	w = httptest.NewRecorder()
	handler.DeleteMeeting(w, del)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	list2 := testutil.MakeRequest("GET", "/teams/"+team.ID+"/meetings", nil, nil)
	list2.SetPathValue("id", team.ID)
	list2 = middleware.WithSessionEmail(list2, "alice@example.com")
	handler.ListMeetings(w, list2)

	meetings = nil
	testutil.AssertJSON(t, w, &meetings)
	if len(meetings) != 0 {
		t.Errorf("Expected no meetings after delete, got %d", len(meetings))
	}
}
