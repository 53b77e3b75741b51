// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Mister Vote API server.

Mister Vote runs paid voting for a pageant contest. Voters pay through a
mobile-money provider, then submit the provider's transaction code. An
administrator checks each code against the provider and validates or rejects
it; only validated transactions add votes to a candidate.

# Starting the Server

The server reads flags, environment variables and an optional .env file:

	DATABASE_URL=postgres://... go run .

Or against a local SQLite file:

	go run . -t sqlite -d ./votes.db -p 5000

# Configuration

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - DATABASE_URL (-d): DSN or SQLite file; for postgres, DB_HOST, DB_NAME,
    DB_USER, DB_PASSWORD, DB_PORT and DB_SSLMODE are used when unset
  - STATIC_DIR (-static): front-end assets (default: static)
  - ADMIN_PASSWORD / ADMIN_PASSWORD_HASH: shared admin secret
  - ADMIN_TOKEN_MODE (-token-mode): static or jwt
  - ADMIN_GUARD (-admin-guard): require a token on admin transaction routes
  - LENIENT_REJECT (-lenient-reject): allow rejecting non-pending transactions
  - LOG_FORMAT, LOG_LEVEL: slog output settings
  - ENV_FILE: path of the .env file (default: .env)

# Architecture

  - handlers: HTTP request handlers (votes, admin, candidates)
  - ledger: Transaction submission, lookup, validation and rejection
  - standings: Candidate listings, ranking and statistics
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - models: Request/response and domain types
  - auth: Admin password check and token issuing
  - db: Connection pool, schema creation, driver error helpers
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
