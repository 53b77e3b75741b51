// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Mister Vote API.

# Handler Types

  - VoteHandler: Public submission and lookup of transaction codes
  - AdminHandler: Admin login and the pending/validate/reject workflow
  - CandidateHandler: Candidate listings, ranking, stats and health

Handlers are created via constructor functions that accept *sql.DB:

	voteHandler := handlers.NewVoteHandler(db, cfg)

# Transaction Lifecycle

Every transaction starts pending and moves at most once:

	pending → validated (adds vote_count to the candidate)
	pending → rejected

Validating or rejecting a transaction that is no longer pending answers 404
and leaves the tallies untouched.

# Errors

Service errors are mapped in one place (errors.go):

	*models.ConflictError      → 409 with the existing transaction
	models.ErrValidation       → 400
	models.ErrNotFound         → 404
	models.ErrStorageUnavailable → 500 "Database error"
*/
package handlers
