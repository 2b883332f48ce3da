// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/CS673-Team4/calstack/auth"
	"github.com/CS673-Team4/calstack/cliparse"
	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/models"
)

type SessionHandler struct {
	cfg cliparse.Config
}

func NewSessionHandler(cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{cfg: cfg}
}

// CreateSession handles POST /auth/session
//
// Identity arrives pre-verified from the OAuth layer in front of this
// service; this endpoint exchanges an email for a signed session token.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	token := auth.SignSessionToken(email, h.cfg.SessionSalt)
	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{Token: token})
}
