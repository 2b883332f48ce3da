// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store declares the persistence interfaces the rest of the
// application is written against. The db package provides the SQL
// implementation; testutil provides in-memory fakes.
package store
