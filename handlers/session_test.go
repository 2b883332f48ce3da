// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CS673-Team4/calstack/auth"
	"github.com/CS673-Team4/calstack/cliparse"
	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/testutil"
)

func TestCreateSession(t *testing.T) {
	cfg := cliparse.Config{SessionSalt: "test-salt"}
	handler := NewSessionHandler(cfg)

	tests := []struct {
		name           string
		body           models.SessionRequest
		expectedStatus int
		wantEmail      string
	}{
		{
			name:           "valid email",
			body:           models.SessionRequest{Email: "alice@example.com"},
			expectedStatus: http.StatusCreated,
			wantEmail:      "alice@example.com",
		},
		{
			name:           "email normalized to lower case",
			body:           models.SessionRequest{Email: "  Alice@Example.COM "},
			expectedStatus: http.StatusCreated,
			wantEmail:      "alice@example.com",
		},
		{
			name:           "missing email",
			body:           models.SessionRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an email",
			body:           models.SessionRequest{Email: "alice"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/session", tt.body, nil)
			w := httptest.NewRecorder()

			handler.CreateSession(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.SessionResponse
				testutil.AssertJSON(t, w, &resp)

				email, err := auth.VerifySessionToken(resp.Token, cfg.SessionSalt)
				if err != nil {
					t.Fatalf("Issued token does not verify: %v", err)
				}
				if email != tt.wantEmail {
					t.Errorf("Expected token for %q, got %q", tt.wantEmail, email)
				}
			}
		})
	}
}
