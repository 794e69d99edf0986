package ports

import (
	"context"
	"time"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// WorkoutLogRepository persists logs. An empty ownerID in List means all logs.
type WorkoutLogRepository interface {
	Create(ctx context.Context, l *domain.WorkoutLog) (*domain.WorkoutLog, error)
	FindByID(ctx context.Context, id string) (*domain.WorkoutLog, error)
	List(ctx context.Context, ownerID string) ([]*domain.WorkoutLog, error)
	Update(ctx context.Context, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error)
	Delete(ctx context.Context, id string) error
}

// WorkoutLogInput carries log fields. OwnerID empty means the caller.
type WorkoutLogInput struct {
	OwnerID         string
	ExerciseID      string
	Sets            int
	Reps            int
	Date            time.Time
	DurationMinutes int
	Notes           string
}

type WorkoutLogService interface {
	Create(ctx context.Context, caller *domain.Identity, in WorkoutLogInput) (*domain.WorkoutLog, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.WorkoutLog, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.WorkoutLog, error)
	Update(ctx context.Context, caller *domain.Identity, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}
