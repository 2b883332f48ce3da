// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables. Flags win over env vars; secrets and provider credentials are
env-only in production.

Required: DATABASE_URL (-d), SESSION_SALT (-session-salt).
Optional: PORT (-p, default 5000), DATABASE_TYPE (-t, sqlite or postgres),
CALENDAR_PROVIDER plus Google/CalDAV credentials, and SMTP settings for
invite mail (log-only notification without them).
*/
package cliparse
