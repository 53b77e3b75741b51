// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the connection pool and creates the schema.

Both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite) are supported:

	conn, err := db.Open(cfg)
	err = db.CreateSchema(conn, cfg.DatabaseType)

CreateSchema is safe to call on every start; all statements use
IF NOT EXISTS.

# Tables

  - candidates: id, name, category, votes (never negative)
  - transactions: payment submissions; transaction_code_normalized is
    UNIQUE, vote_count is positive, status is pending, validated or rejected

	candidates 1──* transactions

IsUniqueViolation recognizes a unique-constraint failure from either driver.
*/
package db
