package ports

import (
	"context"
	"time"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// WorkoutPlanRepository persists plans. An empty ownerID in List means all plans.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	FindByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	List(ctx context.Context, ownerID string) ([]*domain.WorkoutPlan, error)
	Replace(ctx context.Context, p *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, id string) error
}

// PlanExerciseInput is one exercise entry of a plan request.
type PlanExerciseInput struct {
	ExerciseID  string
	Sets        int
	Reps        int
	RestSeconds *int
}

// WorkoutPlanInput carries plan fields. OwnerID is optional on create; empty
// means the caller.
type WorkoutPlanInput struct {
	OwnerID   string
	Title     string
	Level     string
	StartDate time.Time
	EndDate   time.Time
	Exercises []PlanExerciseInput
}

// CreatedPlan is the plan plus the logs generated from it.
type CreatedPlan struct {
	Plan *domain.WorkoutPlan
	Logs []*domain.WorkoutLog
}

type WorkoutPlanService interface {
	Create(ctx context.Context, caller *domain.Identity, in WorkoutPlanInput) (*CreatedPlan, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.WorkoutPlan, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.WorkoutPlan, error)
	Update(ctx context.Context, caller *domain.Identity, id string, in WorkoutPlanInput) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}
