// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Candidate: contestant with its running vote tally
  - Transaction: one submitted payment code and its status
  - TransactionDetail, PendingTransaction: transactions joined with
    candidate details for display

# Errors

Services return the sentinels in errors.go (ErrValidation, ErrNotFound,
ErrUnauthorized, ErrStorageUnavailable) wrapped with detail, or a
*ConflictError when a transaction code is reused. Match with errors.Is
and errors.As.

# Helpers

NormalizeCode gives the case-insensitive form used for uniqueness.
CandidateNumber extracts the display number from an ID like "mister_12".
*/
package models
