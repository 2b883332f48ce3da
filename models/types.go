// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/CS673-Team4/calstack/schedule"
)

// Poll status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Request types

type SessionRequest struct {
	Email string `json:"email"`
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type JoinTeamRequest struct {
	Code string `json:"code"`
}

// TimeRange is the wire form of an interval: ISO-8601 start/end strings.
// Timestamps without an offset are assumed UTC on ingestion.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SetAvailabilityRequest struct {
	Busy []TimeRange `json:"busy"`
}

type SuggestSlotsRequest struct {
	Participants    []string `json:"participants,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	AllowedWeekdays []int    `json:"allowed_weekdays"` // Monday=0 .. Sunday=6
	StartHour       *int     `json:"start_hour,omitempty"`
	EndHour         int      `json:"end_hour"`
	Strategy        string   `json:"strategy,omitempty"`
}

type CreatePollRequest struct {
	ProposedSlots []TimeRange `json:"proposed_slots"`
	Participants  []string    `json:"participants,omitempty"`
}

type VoteRequest struct {
	SelectedSlots []TimeRange `json:"selected_slots"`
}

type CreateMeetingRequest struct {
	Slot      TimeRange `json:"slot"`
	Attendees []string  `json:"attendees,omitempty"`
}

// Response types

type SessionResponse struct {
	Token string `json:"token"`
}

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type VoteResponse struct {
	Success bool   `json:"success"`
	Closed  bool   `json:"closed"`
	Message string `json:"message,omitempty"`
}

type SuggestSlotsResponse struct {
	Slots []schedule.Interval `json:"slots"`
}

type AvailabilityResponse struct {
	Busy []schedule.Interval `json:"busy"`
}

type MembersResponse struct {
	Members []string `json:"members"`
}

// Domain types

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

type Poll struct {
	ID            string                         `json:"id"`
	TeamID        string                         `json:"team_id"`
	Creator       string                         `json:"creator"`
	ProposedSlots []schedule.Interval            `json:"proposed_slots"`
	Participants  []string                       `json:"participants"`
	Votes         map[string][]schedule.Interval `json:"votes"`
	Status        string                         `json:"status"`
	Result        *schedule.Interval             `json:"result,omitempty"`
	CreatedAt     time.Time                      `json:"created_at"`
	ClosedAt      *time.Time                     `json:"closed_at,omitempty"`
}

type Meeting struct {
	ID        string            `json:"id"`
	TeamID    string            `json:"team_id"`
	Slot      schedule.Interval `json:"slot"`
	Attendees []string          `json:"attendees"`
	PollID    string            `json:"poll_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
