package models

import "time"

// Transaction status constants
const (
	StatusPending   = "pending"
	StatusValidated = "validated"
	StatusRejected  = "rejected"
)

// Price of a single vote, in the contest's currency unit.
const UnitPrice = 100

// MaxVoteCount caps a single transaction. It fits a 32-bit INTEGER column
// and keeps vote_count * UnitPrice well inside int64.
const MaxVoteCount = 1_000_000

// Request types

type VoteRequest struct {
	CandidateID     string `json:"candidate_id"`
	PaymentMethod   string `json:"payment_method"`
	TransactionCode string `json:"transaction_code"`
	VoteCount       *int   `json:"vote_count,omitempty"` // nil means 1
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Response types

type SubmitVoteResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transaction_id"`
}

type CheckTransactionResponse struct {
	Exists      bool               `json:"exists"`
	Transaction *TransactionDetail `json:"transaction,omitempty"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatsResponse struct {
	TotalCandidates int64            `json:"total_candidates"`
	TotalVotes      int64            `json:"total_votes"`
	Transactions    map[string]int64 `json:"transactions"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ConflictResponse is returned with 409 when a transaction code was already used.
type ConflictResponse struct {
	Error         string     `json:"error"`
	Message       string     `json:"message"`
	Exists        bool       `json:"exists"`
	TransactionID int64      `json:"transaction_id,omitempty"`
	CandidateID   string     `json:"candidate_id,omitempty"`
	Status        string     `json:"status,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Domain types

type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Votes    int64  `json:"votes"`
	Number   int    `json:"candidate_number"`
}

type RankedCandidate struct {
	Candidate
	RankPosition int `json:"rank_position"`
}

type Transaction struct {
	ID                        int64      `json:"id"`
	CandidateID               string     `json:"candidate_id"`
	PaymentMethod             string     `json:"payment_method"`
	TransactionCode           string     `json:"transaction_code"`
	TransactionCodeNormalized string     `json:"transaction_code_normalized"`
	VoteCount                 int        `json:"vote_count"`
	Amount                    int64      `json:"amount"`
	Status                    string     `json:"status"`
	CreatedAt                 time.Time  `json:"created_at"`
	ValidatedAt               *time.Time `json:"validated_at"`
}

// TransactionDetail is a transaction joined with its candidate's display name.
// CandidateName is empty when the candidate row is gone.
type TransactionDetail struct {
	Transaction
	CandidateName string `json:"candidate_name"`
}

type PendingTransaction struct {
	Transaction
	CandidateName     string `json:"candidate_name"`
	CandidateCategory string `json:"candidate_category"`
	CandidateNumber   int    `json:"candidate_number"`
}

// TransactionRef is the short form of an existing transaction reported on conflicts.
type TransactionRef struct {
	ID          int64
	CandidateID string
	Status      string
	CreatedAt   time.Time
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
