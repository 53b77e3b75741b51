// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/mister-vote/db"
	"github.com/danielhkuo/mister-vote/models"
)

// Ledger owns the lifecycle of vote transactions. It keeps no state between
// calls; every operation re-reads from the database.
type Ledger struct {
	db            *sql.DB
	now           func() time.Time
	lenientReject bool
}

type Option func(*Ledger)

// WithClock overrides the time source used for created_at and validated_at.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLenientReject makes Reject overwrite the status whatever it currently
// is, matching the legacy API. A validated transaction rejected this way
// keeps its votes counted.
func WithLenientReject(lenient bool) Option {
	return func(l *Ledger) { l.lenientReject = lenient }
}

func New(conn *sql.DB, opts ...Option) *Ledger {
	l := &Ledger{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submission is a vote purchase awaiting admin validation.
type Submission struct {
	CandidateID     string
	PaymentMethod   string
	TransactionCode string
	VoteCount       *int
}

// Submit records a pending transaction and returns its ID. A code that is
// already registered, in any letter case, yields a *models.ConflictError
// describing the existing transaction.
func (l *Ledger) Submit(ctx context.Context, s Submission) (int64, error) {
	candidateID := strings.TrimSpace(s.CandidateID)
	method := strings.TrimSpace(s.PaymentMethod)
	code := strings.TrimSpace(s.TransactionCode)
	if candidateID == "" || method == "" || code == "" {
		return 0, fmt.Errorf("%w: candidate_id, payment_method and transaction_code are required", models.ErrValidation)
	}

	voteCount := 1
	if s.VoteCount != nil {
		voteCount = *s.VoteCount
	}
	if voteCount <= 0 {
		return 0, fmt.Errorf("%w: vote_count must be positive", models.ErrValidation)
	}
	if voteCount > models.MaxVoteCount {
		return 0, fmt.Errorf("%w: vote_count must not exceed %d", models.ErrValidation, models.MaxVoteCount)
	}

	normalized := models.NormalizeCode(code)
	amount := int64(voteCount) * models.UnitPrice

	var id int64
	err := l.inTx(ctx, "submit", func(tx *sql.Tx) error {
		existing, found, err := findByCode(ctx, tx, normalized)
		if err != nil {
			return storageErr("lookup transaction code", err)
		}
		if found {
			return &models.ConflictError{Existing: existing}
		}

		var exists bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)
		`, candidateID).Scan(&exists)
		if err != nil {
			return storageErr("check candidate", err)
		}
		if !exists {
			return fmt.Errorf("%w: unknown candidate %q", models.ErrValidation, candidateID)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO transactions (candidate_id, payment_method, transaction_code,
			                          transaction_code_normalized, vote_count, amount, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, candidateID, method, code, normalized, voteCount, amount, models.StatusPending, l.now()).Scan(&id)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return errCodeTaken
			}
			return storageErr("insert transaction", err)
		}
		return nil
	})

	if errors.Is(err, errCodeTaken) {
		// A concurrent submission committed the same code first
		existing, found, lerr := findByCode(ctx, l.db, normalized)
		if lerr != nil || !found {
			return 0, &models.ConflictError{}
		}
		return 0, &models.ConflictError{Existing: existing}
	}
	if err != nil {
		return 0, err
	}

	slog.Info("transaction submitted",
		"transaction_id", id,
		"candidate_id", candidateID,
		"vote_count", voteCount,
	)
	return id, nil
}

// Check looks a transaction up by code, case-insensitively.
func (l *Ledger) Check(ctx context.Context, code string) (*models.TransactionDetail, bool, error) {
	var (
		d             models.TransactionDetail
		validatedAt   sql.NullTime
		candidateName sql.NullString
	)
	err := l.db.QueryRowContext(ctx, `
		SELECT t.id, t.candidate_id, t.payment_method, t.transaction_code,
		       t.transaction_code_normalized, t.vote_count, t.amount, t.status,
		       t.created_at, t.validated_at, c.name
		FROM transactions t
		LEFT JOIN candidates c ON t.candidate_id = c.id
		WHERE t.transaction_code_normalized = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT 1
	`, models.NormalizeCode(code)).Scan(
		&d.ID, &d.CandidateID, &d.PaymentMethod, &d.TransactionCode,
		&d.TransactionCodeNormalized, &d.VoteCount, &d.Amount, &d.Status,
		&d.CreatedAt, &validatedAt, &candidateName,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("check transaction code", err)
	}

	if validatedAt.Valid {
		d.ValidatedAt = &validatedAt.Time
	}
	d.CandidateName = candidateName.String
	return &d, true, nil
}

// ListPending returns pending transactions, newest first.
func (l *Ledger) ListPending(ctx context.Context) ([]models.PendingTransaction, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT t.id, t.candidate_id, t.payment_method, t.transaction_code,
		       t.transaction_code_normalized, t.vote_count, t.amount, t.status,
		       t.created_at, t.validated_at, c.name, c.category
		FROM transactions t
		JOIN candidates c ON t.candidate_id = c.id
		WHERE t.status = $1
		ORDER BY t.created_at DESC, t.id DESC
	`, models.StatusPending)
	if err != nil {
		return nil, storageErr("list pending transactions", err)
	}
	defer rows.Close()

	pending := []models.PendingTransaction{}
	for rows.Next() {
		var (
			p           models.PendingTransaction
			validatedAt sql.NullTime
		)
		if err := rows.Scan(
			&p.ID, &p.CandidateID, &p.PaymentMethod, &p.TransactionCode,
			&p.TransactionCodeNormalized, &p.VoteCount, &p.Amount, &p.Status,
			&p.CreatedAt, &validatedAt, &p.CandidateName, &p.CandidateCategory,
		); err != nil {
			return nil, storageErr("scan pending transaction", err)
		}
		if validatedAt.Valid {
			p.ValidatedAt = &validatedAt.Time
		}
		p.CandidateNumber = models.CandidateNumber(p.CandidateID)
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate pending transactions", err)
	}

	return pending, nil
}

// Validate moves a pending transaction to validated and adds its votes to
// the candidate, both in one database transaction. Transactions that are
// missing or no longer pending yield models.ErrNotFound.
func (l *Ledger) Validate(ctx context.Context, id int64) error {
	var (
		candidateID string
		voteCount   int
	)
	err := l.inTx(ctx, "validate", func(tx *sql.Tx) error {
		// status guard in the WHERE clause makes this a compare-and-swap:
		// concurrent validations of one row cannot both match.
		err := tx.QueryRowContext(ctx, `
			UPDATE transactions
			SET status = $1, validated_at = $2
			WHERE id = $3 AND status = $4
			RETURNING candidate_id, vote_count
		`, models.StatusValidated, l.now(), id, models.StatusPending).Scan(&candidateID, &voteCount)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: no pending transaction %d", models.ErrNotFound, id)
		}
		if err != nil {
			return storageErr("mark transaction validated", err)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE candidates SET votes = votes + $1 WHERE id = $2
		`, voteCount, candidateID)
		if err != nil {
			return storageErr("increment candidate votes", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("increment candidate votes", err)
		}
		if n != 1 {
			return storageErr("increment candidate votes",
				fmt.Errorf("candidate %q matched %d rows", candidateID, n))
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("transaction validated",
		"transaction_id", id,
		"candidate_id", candidateID,
		"vote_count", voteCount,
	)
	return nil
}

// Reject marks a transaction rejected. Only pending transactions can be
// rejected unless the ledger was built WithLenientReject.
func (l *Ledger) Reject(ctx context.Context, id int64) error {
	err := l.inTx(ctx, "reject", func(tx *sql.Tx) error {
		query := `
			UPDATE transactions
			SET status = $1, validated_at = $2
			WHERE id = $3 AND status = $4
		`
		args := []any{models.StatusRejected, l.now(), id, models.StatusPending}
		if l.lenientReject {
			query = `
				UPDATE transactions
				SET status = $1, validated_at = $2
				WHERE id = $3
			`
			args = args[:3]
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return storageErr("mark transaction rejected", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("mark transaction rejected", err)
		}
		if n == 0 && !l.lenientReject {
			return fmt.Errorf("%w: no pending transaction %d", models.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("transaction rejected", "transaction_id", id, "lenient", l.lenientReject)
	return nil
}

var errCodeTaken = errors.New("transaction code taken")

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func findByCode(ctx context.Context, q queryRower, normalized string) (models.TransactionRef, bool, error) {
	var ref models.TransactionRef
	err := q.QueryRowContext(ctx, `
		SELECT id, candidate_id, status, created_at
		FROM transactions
		WHERE transaction_code_normalized = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, normalized).Scan(&ref.ID, &ref.CandidateID, &ref.Status, &ref.CreatedAt)
	if err == sql.ErrNoRows {
		return models.TransactionRef{}, false, nil
	}
	if err != nil {
		return models.TransactionRef{}, false, err
	}
	return ref, true, nil
}

// inTx runs fn inside a database transaction. Any error from fn, or a
// failed commit, rolls everything back.
func (l *Ledger) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(op+": begin", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr(op+": commit", err)
	}
	return nil
}

// storageErr logs the driver error and returns the caller-safe sentinel.
func storageErr(op string, err error) error {
	slog.Error("storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s", models.ErrStorageUnavailable, op)
}
