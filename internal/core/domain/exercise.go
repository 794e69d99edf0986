package domain

import (
	"fmt"
	"strings"
)

// ExerciseType classifies an exercise.
type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseStrength    ExerciseType = "strength"
	ExerciseFlexibility ExerciseType = "flexibility"
)

// ParseExerciseType normalises and validates an exercise type.
func ParseExerciseType(s string) (ExerciseType, error) {
	switch t := ExerciseType(strings.ToLower(strings.TrimSpace(s))); t {
	case ExerciseCardio, ExerciseStrength, ExerciseFlexibility:
		return t, nil
	default:
		return "", fmt.Errorf("%w: invalid exercise type %q", ErrInvalidInput, s)
	}
}

// Exercise is catalogue data managed by trainers. It has no owner.
type Exercise struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	MuscleGroup string       `json:"muscle_group"`
	Type        ExerciseType `json:"exercise_type"`
}
