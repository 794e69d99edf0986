package ports

import (
	"context"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// ExerciseRepository persists the exercise catalogue. Create returns
// domain.ErrConflict when the name is taken.
type ExerciseRepository interface {
	Create(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error)
	FindByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context) ([]*domain.Exercise, error)
	Replace(ctx context.Context, e *domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// ExerciseInput carries exercise fields from the transport layer.
type ExerciseInput struct {
	Name        string
	Description string
	MuscleGroup string
	Type        string
}

type ExerciseService interface {
	Create(ctx context.Context, caller *domain.Identity, in ExerciseInput) (*domain.Exercise, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Exercise, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Exercise, error)
	Update(ctx context.Context, caller *domain.Identity, id string, in ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}
