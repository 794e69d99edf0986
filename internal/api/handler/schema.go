package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type exerciseRequest struct {
	Name        string `json:"name"          validate:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscle_group"`
	Type        string `json:"exercise_type" validate:"required,oneof=cardio strength flexibility"`
}

type planExerciseRequest struct {
	ExerciseID  string `json:"exercise_id"  validate:"required"`
	Sets        int    `json:"sets"         validate:"required,gt=0"`
	Reps        int    `json:"reps"         validate:"required,gt=0"`
	RestSeconds *int   `json:"rest_seconds" validate:"omitempty,min=0"`
}

type planRequest struct {
	UserID    string                `json:"user_id"`
	Title     string                `json:"title"      validate:"required"`
	Level     string                `json:"level"      validate:"omitempty,oneof=beginner intermediate advanced"`
	StartDate string                `json:"start_date" validate:"required"`
	EndDate   string                `json:"end_date"   validate:"required"`
	Exercises []planExerciseRequest `json:"exercises"  validate:"dive"`
}

type logRequest struct {
	UserID     string `json:"user_id"`
	ExerciseID string `json:"exercise_id" validate:"required"`
	Sets       int    `json:"sets"        validate:"required,gt=0"`
	Reps       int    `json:"reps"        validate:"required,gt=0"`
	Date       string `json:"date"`
	Duration   int    `json:"duration"    validate:"required,gt=0"`
	Notes      string `json:"notes"`
}

type updateLogRequest struct {
	Duration *int    `json:"duration" validate:"omitempty,gt=0"`
	Notes    *string `json:"notes"`
}

// --- Response types ---

// identityView is the public projection of an Identity. It has no
// credential fields.
type identityView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
