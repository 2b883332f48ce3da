// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/CS673-Team4/calstack/cliparse"
	"github.com/CS673-Team4/calstack/consensus"
	"github.com/CS673-Team4/calstack/handlers"
	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/store"
)

func NewRouter(st store.Store, engine *consensus.Engine, provider handlers.BusyProvider, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(cfg)
	teamHandler := handlers.NewTeamHandler(st)
	availabilityHandler := handlers.NewAvailabilityHandler(st, provider)
	slotHandler := handlers.NewSlotHandler(st, nil)
	pollHandler := handlers.NewPollHandler(st, engine)
	meetingHandler := handlers.NewMeetingHandler(st)

	salt := cfg.SessionSalt
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(salt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session issuance (identity arrives pre-verified from the OAuth layer)
	mux.HandleFunc("POST /auth/session", middleware.WithLogging(sessionHandler.CreateSession))

	// Teams and membership
	mux.HandleFunc("POST /teams", authed(teamHandler.CreateTeam))
	mux.HandleFunc("POST /teams/join", authed(teamHandler.JoinTeam))
	mux.HandleFunc("GET /teams", authed(teamHandler.ListTeams))
	mux.HandleFunc("POST /teams/{id}/leave", authed(teamHandler.LeaveTeam))
	mux.HandleFunc("GET /teams/{id}/members", authed(teamHandler.Members))

	// Availability
	mux.HandleFunc("GET /teams/{id}/availability/{email}", authed(availabilityHandler.GetBusy))
	mux.HandleFunc("PUT /teams/{id}/availability/{email}", authed(availabilityHandler.SetBusy))
	mux.HandleFunc("POST /teams/{id}/availability/sync", authed(availabilityHandler.Sync))

	// Slot suggestion
	mux.HandleFunc("POST /teams/{id}/suggest_slots", authed(slotHandler.SuggestSlots))

	// Polls and voting
	mux.HandleFunc("POST /teams/{id}/polls", authed(pollHandler.CreatePoll))
	mux.HandleFunc("GET /teams/{id}/polls", authed(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls/{id}/vote", authed(pollHandler.Vote))
	mux.HandleFunc("DELETE /polls/{id}", authed(pollHandler.DeletePoll))

	// Meetings
	mux.HandleFunc("GET /teams/{id}/meetings", authed(meetingHandler.ListMeetings))
	mux.HandleFunc("POST /teams/{id}/meetings", authed(meetingHandler.CreateMeeting))
	mux.HandleFunc("DELETE /meetings/{id}", authed(meetingHandler.DeleteMeeting))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("calstack API v1"))
	})

	return mux
}
