// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CS673-Team4/calstack/auth"
	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/store"
)

type TeamHandler struct {
	store store.Store
}

func NewTeamHandler(st store.Store) *TeamHandler {
	return &TeamHandler{store: st}
}

// CreateTeam handles POST /teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	email := middleware.SessionEmail(r)

	var req models.CreateTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	code, err := auth.GenerateTeamCode()
	if err != nil {
		slog.Error("failed to generate team code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	team := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		Members:   []string{email},
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateTeam(r.Context(), team); err != nil {
		slog.Error("failed to create team", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	slog.Info("team created", "team_id", team.ID, "creator", email)
	middleware.JSONResponse(w, http.StatusCreated, team)
}

// JoinTeam handles POST /teams/join
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	email := middleware.SessionEmail(r)

	var req models.JoinTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	team, err := h.store.GetTeamByCode(r.Context(), req.Code)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	if err := h.store.AddMember(r.Context(), team.ID, email); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	team, err = h.store.GetTeam(r.Context(), team.ID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	slog.Info("member joined team", "team_id", team.ID, "email", email)
	middleware.JSONResponse(w, http.StatusOK, team)
}

// ListTeams handles GET /teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	email := middleware.SessionEmail(r)

	teams, err := h.store.TeamsForMember(r.Context(), email)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	middleware.JSONResponse(w, http.StatusOK, teams)
}

// LeaveTeam handles POST /teams/{id}/leave
//
// When the last member leaves, the team is deleted along with its polls,
// meetings, and stored busy intervals.
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	email := middleware.SessionEmail(r)
	teamID := r.PathValue("id")

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, email) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	remaining, err := h.store.RemoveMember(r.Context(), teamID, email)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	if remaining == 0 {
		if err := h.store.DeleteTeam(r.Context(), teamID); err != nil {
			slog.Error("failed to cascade empty team", "team_id", teamID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete team")
			return
		}
		slog.Info("team deleted after last member left", "team_id", teamID)
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// Members handles GET /teams/{id}/members
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	email := middleware.SessionEmail(r)
	teamID := r.PathValue("id")

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, email) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MembersResponse{Members: team.Members})
}

func memberOf(team models.Team, email string) bool {
	for _, m := range team.Members {
		if m == email {
			return true
		}
	}
	return false
}
