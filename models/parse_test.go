package models

import "testing"

func TestCandidateNumber(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"26miss1", 1},
		{"26mister4", 4},
		{"26mister12", 12},
		{"miss007", 7},
		{"nodigits", 0},
		{"26miss", 0},
		{"", 0},
		{"42", 42},
		{"x99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := CandidateNumber(tt.id); got != tt.want {
				t.Errorf("CandidateNumber(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc123", "ABC123"},
		{"  AbC123 \n", "ABC123"},
		{"ABC123", "ABC123"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCode(tt.in); got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Existing: TransactionRef{ID: 7}}
	if err.Error() != "transaction code already used by transaction 7" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	bare := &ConflictError{}
	if bare.Error() != "transaction code already used" {
		t.Errorf("unexpected message: %s", bare.Error())
	}
}
