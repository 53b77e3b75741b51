// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/mister-vote/cliparse"
	"github.com/danielhkuo/mister-vote/ledger"
	"github.com/danielhkuo/mister-vote/middleware"
	"github.com/danielhkuo/mister-vote/models"
)

type VoteHandler struct {
	ledger *ledger.Ledger
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{ledger: ledger.New(db, ledger.WithLenientReject(cfg.LenientReject))}
}

// SubmitVote handles POST /api/vote
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.ledger.Submit(r.Context(), ledger.Submission{
		CandidateID:     req.CandidateID,
		PaymentMethod:   req.PaymentMethod,
		TransactionCode: req.TransactionCode,
		VoteCount:       req.VoteCount,
	})
	if err != nil {
		writeError(w, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Message:       "Transaction recorded, awaiting validation",
		TransactionID: id,
	})
}

// CheckTransaction handles GET /api/check-transaction/{code}
func (h *VoteHandler) CheckTransaction(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	detail, found, err := h.ledger.Check(r.Context(), code)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Verification error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckTransactionResponse{
		Exists:      found,
		Transaction: detail,
	})
}
