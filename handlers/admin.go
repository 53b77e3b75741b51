// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mister-vote/auth"
	"github.com/danielhkuo/mister-vote/cliparse"
	"github.com/danielhkuo/mister-vote/ledger"
	"github.com/danielhkuo/mister-vote/middleware"
	"github.com/danielhkuo/mister-vote/models"
)

type AdminHandler struct {
	ledger   *ledger.Ledger
	password auth.PasswordChecker
	issuer   auth.TokenIssuer
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, issuer auth.TokenIssuer) *AdminHandler {
	return &AdminHandler{
		ledger:   ledger.New(db, ledger.WithLenientReject(cfg.LenientReject)),
		password: auth.NewPasswordChecker(cfg.AdminPassword, cfg.AdminPasswordHash),
		issuer:   issuer,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	token, err := auth.Login(h.password, h.issuer, req.Password)
	if errors.Is(err, auth.ErrInvalidPassword) {
		slog.Warn("admin login failed", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Incorrect password")
		return
	}
	if err != nil {
		slog.Error("failed to issue admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// ListPending handles GET /api/admin/transactions/pending
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.ledger.ListPending(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pending)
}

// Validate handles POST /api/admin/transactions/{id}/validate
func (h *AdminHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Transaction not found")
		return
	}

	if err := h.ledger.Validate(r.Context(), id); err != nil {
		writeError(w, err, "Transaction not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Transaction validated"})
}

// Reject handles POST /api/admin/transactions/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Transaction not found")
		return
	}

	if err := h.ledger.Reject(r.Context(), id); err != nil {
		writeError(w, err, "Transaction not found or no longer pending")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Transaction rejected"})
}
