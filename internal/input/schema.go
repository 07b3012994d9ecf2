package input

import "time"

// NewUser is the body of POST /api/users.
type NewUser struct {
	Username Field
}

func (u *NewUser) bind(v Values) {
	u.Username = v.Get("username")
}

// NewExercise is the body of POST /api/users/{id}/exercises.
type NewExercise struct {
	Description Field
	Duration    Field
	Date        Field // optional, defaults to the request time
}

func (e *NewExercise) bind(v Values) {
	e.Description = v.Get("description")
	e.Duration = v.Get("duration")
	e.Date = v.Get("date")
}

// ExerciseValues is NewExercise after coercion.
type ExerciseValues struct {
	Description string
	Duration    float64
	Date        time.Time
}

// Coerce converts the raw fields. now is the request time, used when the
// date is absent. Description is passed through; checking that it's
// non-empty is a business rule and lives in the service.
func (e NewExercise) Coerce(now time.Time) ExerciseValues {
	return ExerciseValues{
		Description: e.Description.Value,
		Duration:    Number(e.Duration),
		Date:        Date(e.Date, now),
	}
}

// LogQuery is the query string of GET /api/users/{id}/logs.
type LogQuery struct {
	From  Field
	To    Field
	Limit Field
}

func (q *LogQuery) bind(v Values) {
	q.From = v.Get("from")
	q.To = v.Get("to")
	q.Limit = v.Get("limit")
}

// LogBounds is LogQuery after coercion. nil bounds and Limit 0 mean
// "not requested".
type LogBounds struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Coerce converts the raw query fields.
func (q LogQuery) Coerce() LogBounds {
	var b LogBounds
	if from, ok := LowerBound(q.From); ok {
		b.From = &from
	}
	if to, ok := UpperBound(q.To); ok {
		b.To = &to
	}
	b.Limit = Limit(q.Limit)
	return b
}
