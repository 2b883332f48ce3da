// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

Session tokens are HMAC-signed email bindings: the OAuth flow (handled
outside this service) verifies the user's email, and POST /auth/session
exchanges it for a token that authenticated routes check via the
X-Session-Token header. No server-side session state is kept.

Team join codes are short random base62 strings.
*/
package auth
