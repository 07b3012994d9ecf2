package model

import (
	"math"
	"time"
)

// DateLayout renders a date the way JavaScript's Date.prototype.toDateString
// does, e.g. "Mon Jan 01 2024". Clients of the API compare these strings
// literally, so the layout must not change.
const DateLayout = "Mon Jan 02 2006"

// InvalidDate is what FormatDate returns for the invalid-date sentinel.
const InvalidDate = "Invalid Date"

// Exercise is one logged activity belonging to a user.
//
// ZERO VALUES AS SENTINELS:
// Coercion is lenient (see package input). A duration that wasn't a number
// is stored as NaN, and a date that couldn't be parsed is stored as the zero
// time.Time. Both are kept, not rejected.
type Exercise struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"` // minutes; NaN when the input wasn't numeric
	Date        time.Time `json:"date"`     // zero when the input wasn't a date
}

// HasValidDate reports whether the exercise carries a real date.
func (e Exercise) HasValidDate() bool {
	return !e.Date.IsZero()
}

// HasValidDuration reports whether the duration is a real number.
func (e Exercise) HasValidDuration() bool {
	return !math.IsNaN(e.Duration)
}

// FormatDate renders t with DateLayout in UTC, or InvalidDate for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.UTC().Format(DateLayout)
}
