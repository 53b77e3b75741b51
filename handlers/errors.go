// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/mister-vote/middleware"
	"github.com/danielhkuo/mister-vote/models"
)

// writeError maps service errors onto HTTP responses. Storage failures are
// already logged by the service and reach the client as a generic message.
func writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	var conflict *models.ConflictError
	switch {
	case errors.As(err, &conflict):
		resp := models.ConflictResponse{
			Error:   http.StatusText(http.StatusConflict),
			Message: "Transaction code already used",
			Exists:  true,
		}
		if conflict.Existing.ID != 0 {
			createdAt := conflict.Existing.CreatedAt
			resp.TransactionID = conflict.Existing.ID
			resp.CandidateID = conflict.Existing.CandidateID
			resp.Status = conflict.Existing.Status
			resp.CreatedAt = &createdAt
		}
		middleware.JSONResponse(w, http.StatusConflict, resp)

	case errors.Is(err, models.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))

	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)

	case errors.Is(err, models.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")

	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// validationMessage strips the sentinel prefix so clients see only the detail
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return msg
}

// pathID parses the {id} path value. Non-numeric IDs cannot name a transaction.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
