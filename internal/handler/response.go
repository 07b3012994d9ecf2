package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// ERROR CONTRACT:
// Every error response has the same shape:
//
//	{"error": "User not found"}
//
// Logical failures (validation, not found) are sent with 200 OK. Existing
// clients look at the body, not the status, so this must stay. Only store
// failures and unexpected errors use 500.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/input"
)

// MsgInvalidBody is sent when a request body can't be decoded at all.
const MsgInvalidBody = "Invalid request body"

// MsgInternal is sent for errors that carry no safe message.
const MsgInternal = "Internal server error"

// ErrorResponse is the error format returned by all API endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body is written. Once Encode
// writes, the headers are sent and later changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto the error contract.
//
//	ErrValidation, ErrNotFound → 200 {"error": message}
//	ErrPersistence             → 500 {"error": message}, cause logged
//	anything else              → 500 {"error": "Internal server error"}
//
// errors.As walks the chain, so wrapped AppErrors are still recognised.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, input.ErrBadBody) {
		err = apperror.ValidationFailed("body", MsgInvalidBody)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrNotFound):
			writeJSON(w, http.StatusOK, ErrorResponse{Error: appErr.Message})
			return
		case errors.Is(err, apperror.ErrPersistence):
			logger.Error("store failure", slog.String("error", errorCause(appErr)))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: appErr.Message})
			return
		}
	}

	// NEVER expose unexpected error text to the client: it may contain
	// queries, hostnames or file paths.
	logger.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: MsgInternal})
}

func errorCause(e *apperror.AppError) string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Cause.Error()
}
