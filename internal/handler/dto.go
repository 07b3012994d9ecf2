package handler

import (
	"encoding/json"
	"math"

	"github.com/sakif/exercise-tracker/internal/model"
)

// Response bodies. Field order in the structs is the key order on the wire.

type createUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

type exerciseResponse struct {
	ID          string  `json:"id"` // the USER's id, not the exercise's
	Username    string  `json:"username"`
	Date        string  `json:"date"`
	Duration    minutes `json:"duration"`
	Description string  `json:"description"`
}

type logEntry struct {
	Description string  `json:"description"`
	Duration    minutes `json:"duration"`
	Date        string  `json:"date"`
}

type logResponse struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []logEntry `json:"log"`
}

// minutes is a duration on the wire. encoding/json refuses NaN and ±Inf, so
// those are written as null, same as JSON.stringify does.
type minutes float64

func (m minutes) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func newExerciseResponse(u *model.User, e *model.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:          u.ID,
		Username:    u.Username,
		Date:        model.FormatDate(e.Date),
		Duration:    minutes(e.Duration),
		Description: e.Description,
	}
}

func newLogEntries(exercises []model.Exercise) []logEntry {
	entries := make([]logEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, logEntry{
			Description: e.Description,
			Duration:    minutes(e.Duration),
			Date:        model.FormatDate(e.Date),
		})
	}
	return entries
}
