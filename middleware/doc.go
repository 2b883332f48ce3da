// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Session Authentication

Authenticated routes verify the X-Session-Token header:

	mux.HandleFunc("GET /teams", middleware.WithLogging(
		middleware.RequireSession(salt, handler.ListTeams)))

Inside the handler the caller's email is available via:

	email := middleware.SessionEmail(r)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Session-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Map a domain error to its HTTP status:

	middleware.ErrorFromErr(w, err)

ErrValidation maps to 400, ErrUnauthorized to 403, ErrNotFound to 404,
ErrUpstreamUnavailable to 502, everything else to 500.

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
