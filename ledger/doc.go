// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ledger records vote payments and moves them through
// pending, validated and rejected. Validation is the only path that adds
// votes to a candidate, and it runs in one database transaction with the
// status change.
package ledger
