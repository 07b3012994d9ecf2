// Package handler contains HTTP request handlers for the exercise tracker.
//
// HANDLER RESPONSIBILITIES:
// 1. Decode the request into the input schema (package input)
// 2. Call the service
// 3. Write the JSON response (or the error body, see response.go)
//
// Handlers hold no business rules. They are the glue between HTTP and the
// services.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/input"
	"github.com/sakif/exercise-tracker/internal/service"
)

// UserHandler serves the /api/users collection.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleCreate creates a user.
//
// HTTP: POST /api/users
// REQUEST BODY: username=alice  (or {"username": "alice"})
// RESPONSE:     {"username": "alice", "id": "..."}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in input.NewUser
	if err := input.DecodeBody(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, createUserResponse{Username: user.Username, ID: user.ID})
}

// HandleList lists every user.
//
// HTTP: GET /api/users
// RESPONSE: [{"id": "...", "username": "alice"}, ...]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
