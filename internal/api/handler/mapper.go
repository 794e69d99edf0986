package handler

import (
	"fmt"
	"time"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toExerciseInput(req exerciseRequest) ports.ExerciseInput {
	return ports.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Type:        req.Type,
	}
}

func toPlanInput(req planRequest) (ports.WorkoutPlanInput, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return ports.WorkoutPlanInput{}, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return ports.WorkoutPlanInput{}, err
	}

	exercises := make([]ports.PlanExerciseInput, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		exercises = append(exercises, ports.PlanExerciseInput{
			ExerciseID:  e.ExerciseID,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: e.RestSeconds,
		})
	}

	return ports.WorkoutPlanInput{
		OwnerID:   req.UserID,
		Title:     req.Title,
		Level:     req.Level,
		StartDate: start,
		EndDate:   end,
		Exercises: exercises,
	}, nil
}

func toLogInput(req logRequest) (ports.WorkoutLogInput, error) {
	var date time.Time
	if req.Date != "" {
		d, err := parseDate("date", req.Date)
		if err != nil {
			return ports.WorkoutLogInput{}, err
		}
		date = d
	}
	return ports.WorkoutLogInput{
		OwnerID:         req.UserID,
		ExerciseID:      req.ExerciseID,
		Sets:            req.Sets,
		Reps:            req.Reps,
		Date:            date,
		DurationMinutes: req.Duration,
		Notes:           req.Notes,
	}, nil
}

// parseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func parseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", domain.ErrInvalidInput, field)
}

// --- Domain → Response ---

func toIdentityView(u *domain.Identity) identityView {
	return identityView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toIdentityViews(users []*domain.Identity) []identityView {
	out := make([]identityView, 0, len(users))
	for _, u := range users {
		out = append(out, toIdentityView(u))
	}
	return out
}

func toTokenResponse(t *ports.SessionToken) tokenResponse {
	return tokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresAt:   t.ExpiresAt,
	}
}
