// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify delivers finalized meetings to attendees. Mailer sends an
// SMTP email whose body is a VCALENDAR invite; LogNotifier only logs, for
// development. Delivery failures never roll back the meeting they announce.
package notify
