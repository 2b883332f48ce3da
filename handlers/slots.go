// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math/rand"
	"net/http"
	"sort"
	"time"

	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
	"github.com/CS673-Team4/calstack/store"
)

const (
	defaultStartHour  = 9
	defaultWindowDays = 7
	defaultSlotCount  = 5
)

type SlotHandler struct {
	store store.Store
	rng   *rand.Rand

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewSlotHandler(st store.Store, rng *rand.Rand) *SlotHandler {
	return &SlotHandler{store: st, rng: rng, now: time.Now}
}

// SuggestSlots handles POST /teams/{id}/suggest_slots
//
// Generates the candidate lattice over the next seven days, filters it
// against every participant's stored busy intervals, and returns at most
// five slots picked by the requested strategy.
func (h *SlotHandler) SuggestSlots(w http.ResponseWriter, r *http.Request) {
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

	var req models.SuggestSlotsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DurationMinutes <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_minutes must be positive")
		return
	}

	startHour := defaultStartHour
	if req.StartHour != nil {
		startHour = *req.StartHour
	}
	if startHour < 0 || startHour > 23 || req.EndHour < 0 || req.EndHour > 24 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "hours must be within 0-24")
		return
	}

	allowed := make(map[schedule.Weekday]bool, len(req.AllowedWeekdays))
	for _, d := range req.AllowedWeekdays {
		if d < 0 || d > 6 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "allowed_weekdays entries must be 0 (Monday) through 6 (Sunday)")
			return
		}
		allowed[schedule.Weekday(d)] = true
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = schedule.StrategyEarliest
	}
	switch strategy {
	case schedule.StrategyEarliest, schedule.StrategyRoundRobinDay, schedule.StrategyRandom:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown strategy: "+strategy)
		return
	}

	participants := req.Participants
	if len(participants) == 0 {
		participants = team.Members
	}

	busy, err := h.store.GetBusyForMany(r.Context(), teamID, participants)
	if err != nil {
		middleware.ErrorFromErr(w, err)
		return
	}

	candidates := schedule.Generate(h.now().UTC(), defaultWindowDays, allowed,
		startHour, req.EndHour, req.DurationMinutes)
	free := schedule.FilterFree(candidates, busy, participants)
	slots := schedule.Select(free, strategy, defaultSlotCount, h.rng)
	if slots == nil {
		slots = []schedule.Interval{}
	}

	// Random sampling order is not meaningful to clients
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })

	middleware.JSONResponse(w, http.StatusOK, models.SuggestSlotsResponse{Slots: slots})
}
