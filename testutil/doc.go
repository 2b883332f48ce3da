// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared test fixtures: an in-memory store.Store
// implementation, a recording notifier, and HTTP request/assertion helpers.
package testutil
