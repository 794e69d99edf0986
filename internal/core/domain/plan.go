package domain

import (
	"fmt"
	"time"
)

// PlanLevel is the difficulty of a workout plan.
type PlanLevel string

const (
	LevelBeginner     PlanLevel = "beginner"
	LevelIntermediate PlanLevel = "intermediate"
	LevelAdvanced     PlanLevel = "advanced"
)

const DefaultRestSeconds = 30

// ParsePlanLevel defaults an empty level to beginner.
func ParsePlanLevel(s string) (PlanLevel, error) {
	switch l := PlanLevel(s); l {
	case "":
		return LevelBeginner, nil
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return l, nil
	default:
		return "", fmt.Errorf("%w: invalid plan level %q", ErrInvalidInput, s)
	}
}

// PlanExercise is one entry of a plan's exercise list.
type PlanExercise struct {
	ExerciseID  string `json:"exercise_id" bson:"exercise_id"`
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Sets        int    `json:"sets" bson:"sets"`
	Reps        int    `json:"reps" bson:"reps"`
	RestSeconds int    `json:"rest_seconds" bson:"rest_seconds"`
}

// WorkoutPlan is owned by exactly one Identity.
type WorkoutPlan struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"user_id"`
	Title     string         `json:"title"`
	Level     PlanLevel      `json:"level"`
	Exercises []PlanExercise `json:"exercises"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	CreatedAt time.Time      `json:"created_at"`
}

// DurationDays is the number of whole days between start and end.
func (p *WorkoutPlan) DurationDays() int {
	return int(p.EndDate.Sub(p.StartDate).Hours() / 24)
}
