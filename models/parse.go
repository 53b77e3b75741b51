// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strconv"
	"strings"
)

// NormalizeCode returns the form of a transaction code used for uniqueness:
// surrounding whitespace removed, letters upper-cased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CandidateNumber extracts the numeric suffix of a candidate ID
// ("26miss1" -> 1, "26mister12" -> 12). IDs without trailing digits yield 0.
func CandidateNumber(id string) int {
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(id[start:end])
	if err != nil {
		// suffix too long for int
		return 0
	}
	return n
}
