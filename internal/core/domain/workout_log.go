package domain

import "time"

// WorkoutLog records a performed exercise. Owned by exactly one Identity.
type WorkoutLog struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"user_id"`
	ExerciseID          string    `json:"exercise_id"`
	ExerciseName        string    `json:"exercise_name"`
	ExerciseDescription string    `json:"exercise_description,omitempty"`
	Sets                int       `json:"sets"`
	Reps                int       `json:"reps"`
	Date                time.Time `json:"date"`
	DurationMinutes     int       `json:"duration"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// WorkoutLogPatch carries the mutable log fields; nil means unchanged.
type WorkoutLogPatch struct {
	DurationMinutes *int
	Notes           *string
}
