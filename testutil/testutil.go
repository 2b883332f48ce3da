// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CS673-Team4/calstack/models"
	"github.com/CS673-Team4/calstack/schedule"
)

// CreateTestTeam inserts a team with the given members and returns it.
func CreateTestTeam(t *testing.T, s *MemStore, name string, members ...string) models.Team {
	t.Helper()

	team := models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      "TESTCODE",
		Members:   members,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateTeam(context.Background(), team); err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}
	return team
}

// Slot builds an hour-long interval starting at the given RFC 3339 instant.
func Slot(t *testing.T, start string) schedule.Interval {
	t.Helper()

	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("bad slot start %q: %v", start, err)
	}
	iv, err := schedule.NewInterval(s, s.Add(time.Hour))
	if err != nil {
		t.Fatalf("bad slot %q: %v", start, err)
	}
	return iv
}

// RecordingNotifier captures notify calls for assertions. FailWith makes
// every call return that error, for exercising the logged-only policy.
type RecordingNotifier struct {
	mu       sync.Mutex
	Meetings []models.Meeting
	FailWith error
}

func (n *RecordingNotifier) Notify(_ context.Context, meeting models.Meeting, _ []string, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Meetings = append(n.Meetings, meeting)
	return n.FailWith
}

func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Meetings)
}

// MakeRequest creates an HTTP test request with an optional JSON body.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
