// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ConflictError reports a transaction code that is already registered.
// Existing is the zero value when the winning row could not be re-read.
type ConflictError struct {
	Existing TransactionRef
}

func (e *ConflictError) Error() string {
	if e.Existing.ID == 0 {
		return "transaction code already used"
	}
	return fmt.Sprintf("transaction code already used by transaction %d", e.Existing.ID)
}
