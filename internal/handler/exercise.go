package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/exercise-tracker/internal/input"
	"github.com/sakif/exercise-tracker/internal/service"
)

// ExerciseHandler serves a user's exercises and log.
type ExerciseHandler struct {
	exercises *service.ExerciseService
	logger    *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exercises *service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises, logger: logger}
}

// HandleCreate logs an exercise for the user in the path.
//
// HTTP: POST /api/users/{id}/exercises
// REQUEST BODY: description=run&duration=30&date=2023-01-15  (date optional)
// RESPONSE:
//
//	{"id": "<user id>", "username": "alice", "date": "Sun Jan 15 2023",
//	 "duration": 30, "description": "run"}
func (h *ExerciseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in input.NewExercise
	if err := input.DecodeBody(w, r, &in); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, exercise, err := h.exercises.Add(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, newExerciseResponse(user, exercise))
}

// HandleLog returns the user's exercises, optionally filtered.
//
// HTTP: GET /api/users/{id}/logs?from=2023-01-01&to=2023-01-31&limit=10
// RESPONSE:
//
//	{"id": "<user id>", "username": "alice", "count": 1,
//	 "log": [{"description": "run", "duration": 30, "date": "Sun Jan 15 2023"}]}
func (h *ExerciseHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	var q input.LogQuery
	input.DecodeQuery(r, &q)

	log, err := h.exercises.Log(r.Context(), chi.URLParam(r, "id"), q)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	entries := newLogEntries(log.Exercises)
	writeJSON(w, http.StatusOK, logResponse{
		ID:       log.User.ID,
		Username: log.User.Username,
		Count:    len(entries),
		Log:      entries,
	})
}
