// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"

	"github.com/CS673-Team4/calstack/models"
)

// Notifier delivers a finalized meeting to its attendees. The consensus
// engine calls it exactly once per poll closure and does not inspect or
// retry on failure.
type Notifier interface {
	Notify(ctx context.Context, meeting models.Meeting, attendees []string, teamName string) error
}

// LogNotifier is the dev fallback when SMTP is unconfigured: it records the
// finalized meeting in the log and delivers nothing.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, meeting models.Meeting, attendees []string, teamName string) error {
	slog.Info("meeting finalized (notification logging only)",
		"meeting_id", meeting.ID,
		"team", teamName,
		"slot_start", meeting.Slot.Start,
		"slot_end", meeting.Slot.End,
		"attendees", len(attendees),
	)
	return nil
}
