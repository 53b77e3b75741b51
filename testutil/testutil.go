// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/mister-vote/cliparse"
	"github.com/danielhkuo/mister-vote/db"
	"github.com/danielhkuo/mister-vote/models"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in the test's temp dir and disappears with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "votes.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          5000,
		DatabaseType:  cliparse.DatabaseSQLite,
		StaticDir:     "static",
		AdminPassword: "2025",
		TokenMode:     cliparse.TokenModeStatic,
		TokenTTLHours: 24,
		LogFormat:     "text",
		LogLevel:      "info",
	}
}

// CreateTestCandidate inserts a candidate with the given vote tally
func CreateTestCandidate(t *testing.T, conn *sql.DB, id, name, category string, votes int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidates (id, name, category, votes)
		VALUES ($1, $2, $3, $4)
	`, id, name, category, votes)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
}

// CreateTestTransaction inserts a transaction directly, bypassing the ledger,
// and returns its ID
func CreateTestTransaction(t *testing.T, conn *sql.DB, candidateID, code, status string, voteCount int, createdAt time.Time) int64 {
	t.Helper()

	var validatedAt *time.Time
	if status != models.StatusPending {
		v := createdAt.Add(time.Minute)
		validatedAt = &v
	}

	var id int64
	err := conn.QueryRow(`
		INSERT INTO transactions (candidate_id, payment_method, transaction_code,
		                          transaction_code_normalized, vote_count, amount, status, created_at, validated_at)
		VALUES ($1, 'wave', $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, candidateID, code, models.NormalizeCode(code), voteCount, int64(voteCount)*models.UnitPrice,
		status, createdAt, validatedAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return id
}

// CandidateVotes returns the stored vote tally of a candidate
func CandidateVotes(t *testing.T, conn *sql.DB, candidateID string) int64 {
	t.Helper()

	var votes int64
	if err := conn.QueryRow(`SELECT votes FROM candidates WHERE id = $1`, candidateID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read candidate votes: %v", err)
	}
	return votes
}

// TransactionStatus returns the stored status of a transaction
func TransactionStatus(t *testing.T, conn *sql.DB, id int64) string {
	t.Helper()

	var status string
	if err := conn.QueryRow(`SELECT status FROM transactions WHERE id = $1`, id).Scan(&status); err != nil {
		t.Fatalf("Failed to read transaction status: %v", err)
	}
	return status
}

// AssertTallyConsistent checks that every candidate's votes equal the sum of
// its validated transactions' vote counts
func AssertTallyConsistent(t *testing.T, conn *sql.DB) {
	t.Helper()

	rows, err := conn.Query(`
		SELECT c.id, c.votes, COALESCE(SUM(t.vote_count), 0)
		FROM candidates c
		LEFT JOIN transactions t ON t.candidate_id = c.id AND t.status = 'validated'
		GROUP BY c.id, c.votes
	`)
	if err != nil {
		t.Fatalf("Failed to query tallies: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              string
			votes, expected int64
		)
		if err := rows.Scan(&id, &votes, &expected); err != nil {
			t.Fatalf("Failed to scan tally: %v", err)
		}
		if votes != expected {
			t.Errorf("Candidate %s has %d votes but validated transactions sum to %d", id, votes, expected)
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate tallies: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
