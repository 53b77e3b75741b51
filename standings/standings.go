// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package standings reads candidate listings, rankings and totals.
package standings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danielhkuo/mister-vote/models"
)

// Service answers read-only questions about candidates and tallies.
type Service struct {
	db *sql.DB
}

func New(db *sql.DB) *Service {
	return &Service{db: db}
}

// ListCandidates returns every candidate ordered by category, then by the
// numeric suffix of its ID.
func (s *Service) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.listCandidates(ctx, `
		SELECT id, name, category, votes FROM candidates
	`)
}

// ListByCategory is ListCandidates restricted to one category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	return s.listCandidates(ctx, `
		SELECT id, name, category, votes FROM candidates WHERE category = $1
	`, category)
}

func (s *Service) listCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	candidates, err := s.queryCandidates(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	})
	return candidates, nil
}

// Ranking orders candidates by votes (desc) then name, numbering them
// 1..N in that order. Equal tallies still get distinct positions.
func (s *Service) Ranking(ctx context.Context) ([]models.RankedCandidate, error) {
	candidates, err := s.queryCandidates(ctx, `
		SELECT id, name, category, votes FROM candidates
		ORDER BY votes DESC, name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}

	ranking := make([]models.RankedCandidate, len(candidates))
	for i, c := range candidates {
		ranking[i] = models.RankedCandidate{Candidate: c, RankPosition: i + 1}
	}
	return ranking, nil
}

// Stats returns aggregate counts. Transactions maps each status present in
// storage to its count; statuses with no rows are omitted.
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats := &models.StatsResponse{Transactions: map[string]int64{}}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(votes), 0) FROM candidates
	`).Scan(&stats.TotalCandidates, &stats.TotalVotes)
	if err != nil {
		return nil, storageErr("count candidates", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM transactions GROUP BY status
	`)
	if err != nil {
		return nil, storageErr("count transactions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, storageErr("scan transaction count", err)
		}
		stats.Transactions[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transaction counts", err)
	}

	return stats, nil
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	var one int
	if err := s.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func (s *Service) queryCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.Votes); err != nil {
			return nil, storageErr("scan candidate", err)
		}
		c.Number = models.CandidateNumber(c.ID)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate candidates", err)
	}

	return candidates, nil
}

func storageErr(op string, err error) error {
	slog.Error("storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: %s", models.ErrStorageUnavailable, op)
}
