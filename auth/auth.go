// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/mister-vote/cliparse"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidToken    = errors.New("invalid admin token")
)

// StaticAdminToken is the placeholder credential handed out by the legacy
// login flow. It is not secret and proves nothing; use the jwt mode for a
// token that can actually be verified.
const StaticAdminToken = "admin_token"

const adminSubject = "admin"

// PasswordChecker verifies the shared admin password.
type PasswordChecker struct {
	plain []byte
	hash  []byte
}

// NewPasswordChecker prefers a bcrypt hash when one is configured and
// otherwise compares against the plain shared secret.
func NewPasswordChecker(plain, bcryptHash string) PasswordChecker {
	if bcryptHash != "" {
		return PasswordChecker{hash: []byte(bcryptHash)}
	}
	return PasswordChecker{plain: []byte(plain)}
}

func (p PasswordChecker) Check(password string) error {
	if password == "" {
		return ErrInvalidPassword
	}
	if p.hash != nil {
		if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}
	if len(p.plain) == 0 || subtle.ConstantTimeCompare(p.plain, []byte(password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// TokenIssuer hands out and checks admin session tokens.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Verify(token string) error
}

// NewTokenIssuer builds the issuer selected by cfg.TokenMode.
func NewTokenIssuer(cfg cliparse.Config) TokenIssuer {
	if cfg.TokenMode == cliparse.TokenModeJWT {
		ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
		return NewJWTIssuer(cfg.TokenSecret, "mister-vote", ttl)
	}
	return StaticTokenIssuer{Token: StaticAdminToken}
}

// StaticTokenIssuer always issues the same fixed token.
type StaticTokenIssuer struct {
	Token string
}

func (s StaticTokenIssuer) Issue(string) (string, error) {
	return s.Token, nil
}

func (s StaticTokenIssuer) Verify(token string) error {
	if token == "" || subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// JWTIssuer signs HS256 tokens with a shared secret.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret, issuer string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (j *JWTIssuer) Issue(subject string) (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func (j *JWTIssuer) Verify(token string) error {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithSubject(adminSubject),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Login checks the password and issues an admin token.
func Login(checker PasswordChecker, issuer TokenIssuer, password string) (string, error) {
	if err := checker.Check(password); err != nil {
		return "", err
	}
	return issuer.Issue(adminSubject)
}
