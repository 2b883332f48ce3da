// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/store"
)

// BusyProvider pulls busy intervals from an external calendar source.
type BusyProvider interface {
	BusyWindow(ctx context.Context, email string, start, end time.Time) ([]schedule.Interval, error)
}

type AvailabilityHandler struct {
	store    store.Store
	provider BusyProvider
}

// NewAvailabilityHandler wires the availability endpoints. provider may be
// nil when no calendar source is configured; sync then stores an empty list.
func NewAvailabilityHandler(st store.Store, provider BusyProvider) *AvailabilityHandler {
	return &AvailabilityHandler{store: st, provider: provider}
}

// GetBusy handles GET /teams/{id}/availability/{email}
func (h *AvailabilityHandler) GetBusy(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	teamID := r.PathValue("id")
	email := r.PathValue("email")

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	busy, err := h.store.GetBusy(r.Context(), teamID, email)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AvailabilityResponse{Busy: busy})
}

// SetBusy handles PUT /teams/{id}/availability/{email}
//
// Intervals are validated and normalized to UTC before storage; the stored
// set is replaced wholesale.
func (h *AvailabilityHandler) SetBusy(w http.ResponseWriter, r *http.Request) {
	caller := middleware.SessionEmail(r)
	teamID := r.PathValue("id")
	email := r.PathValue("email")

	if caller != email {
		middleware.ErrorResponse(w, http.StatusForbidden, "Can only set your own availability")
		return
	}

	team, err := h.store.GetTeam(r.Context(), teamID)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}
	if !memberOf(team, caller) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a member of this team")
		return
	}

	var req models.SetAvailabilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	busy := make([]schedule.Interval, 0, len(req.Busy))
	for _, tr := range req.Busy {
		iv, err := schedule.ParseInterval(tr.Start, tr.End)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid interval: "+err.Error())
			return
		}
		busy = append(busy, iv)
	}

	if err := h.store.SetBusy(r.Context(), teamID, email, busy); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	slog.Info("availability replaced", "team_id", teamID, "email", email, "intervals", len(busy))
	middleware.JSONResponse(w, http.StatusOK, models.AvailabilityResponse{Busy: busy})
}

// Sync handles POST /teams/{id}/availability/sync
//
// Pulls the session user's busy intervals for the next seven days from the
// configured provider. A provider failure is not fatal: the user is treated
// as fully free and an empty list is stored, so scheduling can proceed.
func (h *AvailabilityHandler) Sync(w http.ResponseWriter, r *http.Request) {
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

	now := time.Now().UTC()
	var busy []schedule.Interval
	if h.provider != nil {
		busy, err = h.provider.BusyWindow(r.Context(), caller, now, now.Add(7*24*time.Hour))
		if err != nil {
			slog.Warn("calendar provider unavailable, treating user as free",
				"email", caller, "error", err)
			busy = nil
		}
	}
	if busy == nil {
		busy = []schedule.Interval{}
	}

	if err := h.store.SetBusy(r.Context(), teamID, caller, busy); err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	slog.Info("availability synced", "team_id", teamID, "email", caller, "intervals", len(busy))
	middleware.JSONResponse(w, http.StatusOK, models.AvailabilityResponse{Busy: busy})
}
