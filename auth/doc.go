// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth checks the admin password and issues admin tokens.

# Password

The shared secret is compared in constant time, or against a bcrypt hash
when ADMIN_PASSWORD_HASH is set:

	checker := auth.NewPasswordChecker(cfg.AdminPassword, cfg.AdminPasswordHash)

# Tokens

TokenIssuer has two implementations:

  - StaticTokenIssuer: always returns StaticAdminToken. It carries no proof
    of anything and exists for compatibility with existing admin front-ends.
  - JWTIssuer: HS256 tokens with issuer, subject, expiry and a unique ID.

	issuer := auth.NewTokenIssuer(cfg)
	token, err := auth.Login(checker, issuer, password)
*/
package auth
