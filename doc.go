// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CalStack API server.

CalStack is a group meeting scheduler: it pulls busy intervals from team
members' calendars, suggests conflict-free meeting slots, runs a poll over
the proposals, and books the winning slot as a meeting with emailed
calendar invites.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=calstack.db SESSION_SALT=... go run .

Or with flags:

	go run . -p 5000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - SESSION_SALT (--session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - CALENDAR_PROVIDER (-provider): "google" or "caldav"; unset disables sync
  - GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET / GOOGLE_ACCOUNT
  - CALDAV_USERNAME / CALDAV_PASSWORD / CALDAV_CALENDAR
  - SMTP_HOST / SMTP_PORT / SMTP_USERNAME / SMTP_PASSWORD / SMTP_FROM

# Architecture

The server uses a handler-based architecture with dependency injection:

  - schedule: Interval math, slot lattice, free-slot filter, selection
  - consensus: Poll lifecycle, vote tally, closure, meeting emission
  - handlers: HTTP request handlers (teams, availability, slots, polls, meetings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Session auth, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Persistence interfaces
  - db: SQL store implementation and schema creation
  - gcal, icloudcal: Calendar providers for busy-interval sync
  - notify: SMTP invite mailer with iCalendar attachments
  - auth: Token signing and join-code generation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
