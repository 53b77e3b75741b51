// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/mister-vote/auth"
	"github.com/danielhkuo/mister-vote/cliparse"
	"github.com/danielhkuo/mister-vote/handlers"
	"github.com/danielhkuo/mister-vote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	issuer := auth.NewTokenIssuer(cfg)

	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(db)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, issuer)

	// Admin transaction routes are open unless the guard is enabled
	admin := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if cfg.AdminGuard {
		admin = middleware.RequireAdmin(issuer)
	}

	// Health check
	mux.HandleFunc("GET /api/health", middleware.WithLogging(candidateHandler.Health))

	// Candidates and results (public)
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("GET /api/candidates/{category}", middleware.WithLogging(candidateHandler.ListByCategory))
	mux.HandleFunc("GET /api/ranking", middleware.WithLogging(candidateHandler.Ranking))
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(candidateHandler.Stats))

	// Voting (public)
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(voteHandler.SubmitVote))
	mux.HandleFunc("GET /api/check-transaction/{code}", middleware.WithLogging(voteHandler.CheckTransaction))

	// Administration
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/transactions/pending", middleware.WithLogging(admin(adminHandler.ListPending)))
	mux.HandleFunc("POST /api/admin/transactions/{id}/validate", middleware.WithLogging(admin(adminHandler.Validate)))
	mux.HandleFunc("POST /api/admin/transactions/{id}/reject", middleware.WithLogging(admin(adminHandler.Reject)))

	// Front-end assets
	mux.HandleFunc("GET /", middleware.WithLogging(handlers.Static(cfg.StaticDir)))

	return mux
}
