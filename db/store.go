// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
)

// Store implements store.Store on a *sql.DB. Placeholders use the $N style,
// which both lib/pq and modernc sqlite accept, so one implementation serves
// either DATABASE_TYPE.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}
