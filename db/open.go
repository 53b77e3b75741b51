// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/mister-vote/cliparse"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open returns the process-wide connection pool for the configured database.
// The caller owns the pool and must Close it.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		conn, err := sql.Open("postgres", PostgresDSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
		return conn, nil

	case cliparse.DatabaseSQLite:
		conn, err := sql.Open("sqlite", SQLiteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite has a single writer; one connection keeps
		// read-then-write transactions from failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
		return conn, nil
	}

	return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}

// PostgresDSN returns cfg.DatabaseURL when set, otherwise a URL built from
// the individual DB_* settings.
func PostgresDSN(cfg cliparse.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort)),
		Path:   "/" + cfg.DBName,
	}
	if cfg.DBPassword != "" {
		u.User = url.UserPassword(cfg.DBUser, cfg.DBPassword)
	} else {
		u.User = url.User(cfg.DBUser)
	}
	if cfg.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.DBSSLMode}}.Encode()
	}
	return u.String()
}

// SQLiteDSN appends the pragmas every connection needs to a file path.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}
