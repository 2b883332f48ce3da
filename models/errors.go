// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Error taxonomy. Store, engine, and provider code return these (wrapped with
// context via fmt.Errorf and %w); the HTTP layer maps them to status codes.
var (
	// ErrValidation covers malformed or missing required input. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers references to missing teams/polls/meetings, and
	// voting on a poll that already closed.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers actors lacking permission: non-members voting,
	// non-creators deleting.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstreamUnavailable marks a calendar provider failure. Treated as
	// "no data": the caller logs it and proceeds with an empty busy list.
	ErrUpstreamUnavailable = errors.New("upstream calendar unavailable")

	// ErrNotification marks a notifier failure. Logged only; never affects
	// poll or meeting state.
	ErrNotification = errors.New("notification failed")
)
