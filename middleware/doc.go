// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start and completion (status, duration_ms) with a request ID
taken from X-Request-ID or generated.

# Admin Guard

	mux.HandleFunc("GET /api/admin/transactions/pending",
		middleware.RequireAdmin(issuer)(handler))

Accepts the token in X-Admin-Token or as "Authorization: Bearer <token>".

# CORS Middleware

	server := http.Server{Handler: middleware.CORS(mux)}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	err := middleware.ParseJSONBody(r, &req)
*/
package middleware
