// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/store"
)

type MeetingHandler struct {
	store store.Store
}

func NewMeetingHandler(st store.Store) *MeetingHandler {
	return &MeetingHandler{store: st}
}

// ListMeetings handles GET /teams/{id}/meetings
func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	teamID := r.PathValue("id")

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	meetings, err := h.store.MeetingsForTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	middleware.JSONResponse(w, http.StatusOK, meetings)
}

// CreateMeeting handles POST /teams/{id}/meetings
//
// Manual scheduling path for meetings arranged outside a poll. Attendees
// default to the full team.
func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	teamID := r.PathValue("id")

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	var req models.CreateMeetingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	slot, err := schedule.ParseInterval(req.Slot.Start, req.Slot.End)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid slot: "+err.Error())
		return
	}

	attendees := req.Attendees
	if len(attendees) == 0 {
		attendees = team.Members
	}

	meeting := models.Meeting{
		ID:        uuid.NewString(),
		TeamID:    teamID,
		Slot:      slot,
		Attendees: attendees,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateMeeting(r.Context(), meeting); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	slog.Info("meeting created", "meeting_id", meeting.ID, "team_id", teamID, "creator", caller)
	middleware.JSONResponse(w, http.StatusCreated, meeting)
}

// DeleteMeeting handles DELETE /meetings/{id}
func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	meetingID := r.PathValue("id")

	meeting, err := h.store.GetMeeting(r.Context(), meetingID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	team, err := h.store.GetTeam(r.Context(), meeting.TeamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	if err := h.store.DeleteMeeting(r.Context(), meetingID); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}
