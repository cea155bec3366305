// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db defines the persistence interface and its MongoDB implementation.

# Store

Handlers depend on the Store interface, not on a concrete client:

	store, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		...
	}
	defer store.Close(ctx)

Tests substitute an in-memory implementation from the testutil package.

# Collections

  - users: one document per account, unique by email
  - contests: contest documents with a lifecycle status field
    (submitted → confirmed → closed)
  - participations: one document per paying entrant, unique per
    (userId, contestId)

# Indexes

EnsureIndexes creates the unique indexes on startup:

  - users.email (uniq_email)
  - participations.(userId, contestId) (uniq_user_contest)
  - contests.status (non-unique, for the status-filtered lists)

# Errors

Sentinel errors for handler translation:

	ErrNotFound    → 404
	ErrDuplicate   → 409
	ErrWrongStatus → 409

# Multi-document sequences

Two operations touch more than one document and carry a compensating
action so partial failure cannot leave the collections inconsistent:

  - AddParticipant: insert participation, then increment the contest
    participant counter; the insert is deleted if the increment fails.
  - DeclareWinner: set the contest winner and close it, then flag the
    matching participation; the contest write is reverted if the
    participation update fails.
*/
package db
