// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	_ = cliparse.LoadEnvFile(os.Getenv("ENV_FILE"))
	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables, which take
precedence over built-in defaults. LoadEnvFile never overrides variables
that are already set.

# Validation

ParseFlags returns an error when:

  - DATABASE_TYPE is neither postgres nor sqlite
  - sqlite is selected without a database file
  - ADMIN_TOKEN_MODE is jwt without ADMIN_TOKEN_SECRET
  - a numeric or boolean variable does not parse
*/
package cliparse
