// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/CS673-Team4/calstack/consensus"
	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/store"
)

type PollHandler struct {
	store  store.Store
	engine *consensus.Engine
}

func NewPollHandler(st store.Store, engine *consensus.Engine) *PollHandler {
	return &PollHandler{store: st, engine: engine}
}

// CreatePoll handles POST /teams/{id}/polls
//
// When participants are omitted the poll requires a vote from every current
// team member.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	slots, err := parseSlots(req.ProposedSlots)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	participants := req.Participants
	if len(participants) == 0 {
		participants = team.Members
	}

	poll, err := h.engine.CreatePoll(r.Context(), teamID, slots, participants, caller)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{PollID: poll.ID})
}

// ListPolls handles GET /teams/{id}/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
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

	polls, err := h.store.PollsForTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if polls == nil {
		polls = []models.Poll{}
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// Vote handles POST /polls/{id}/vote
//
// An empty selection is a valid ballot meaning "none of these work for me";
// it still counts toward closing the poll.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	pollID := r.PathValue("id")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	selection, err := parseSlots(req.SelectedSlots)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	closed, err := h.engine.Vote(r.Context(), pollID, caller, selection)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	resp := models.VoteResponse{Success: true, Closed: closed}
	if closed {
		resp.Message = "Poll closed and meeting scheduled"
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	pollID := r.PathValue("id")

	if err := h.engine.DeletePoll(r.Context(), pollID, caller); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

func parseSlots(ranges []models.TimeRange) ([]schedule.Interval, error) {
	slots := make([]schedule.Interval, 0, len(ranges))
	for _, tr := range ranges {
		iv, err := schedule.ParseInterval(tr.Start, tr.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, iv)
	}
	return slots, nil
}
