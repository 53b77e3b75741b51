// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Mister Vote API.

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Public:

	GET  /api/candidates                  - All candidates
	GET  /api/candidates/{category}       - Candidates of one category
	POST /api/vote                        - Submit a transaction code
	GET  /api/check-transaction/{code}    - Look up a transaction code
	GET  /api/ranking                     - Candidates by votes
	GET  /api/stats                       - Aggregate counts
	GET  /api/health                      - Database health

Administration (token required when cfg.AdminGuard is set):

	POST /api/admin/login                          - Exchange password for token
	GET  /api/admin/transactions/pending           - Pending queue
	POST /api/admin/transactions/{id}/validate     - Count the votes
	POST /api/admin/transactions/{id}/reject       - Discard

Everything else is served from cfg.StaticDir.
*/
package router
