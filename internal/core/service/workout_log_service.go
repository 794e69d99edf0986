package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/core/auth"
	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

type WorkoutLogService struct {
	logs       ports.WorkoutLogRepository
	exercises  ports.ExerciseRepository
	identities ports.IdentityRepository
	policy     Authorizer
	events     ports.EventPublisher
	log        zerolog.Logger
}

func NewWorkoutLogService(
	logs ports.WorkoutLogRepository,
	exercises ports.ExerciseRepository,
	identities ports.IdentityRepository,
	policy Authorizer,
	events ports.EventPublisher,
	log zerolog.Logger,
) *WorkoutLogService {
	if events == nil {
		events = noopPublisher{}
	}
	return &WorkoutLogService{
		logs:       logs,
		exercises:  exercises,
		identities: identities,
		policy:     policy,
		events:     events,
		log:        log,
	}
}

func (s *WorkoutLogService) Create(ctx context.Context, caller *domain.Identity, in ports.WorkoutLogInput) (*domain.WorkoutLog, error) {
	owner, err := resolveOwner(ctx, s.policy, s.identities, caller, auth.ResourceLog, in.OwnerID)
	if err != nil {
		return nil, err
	}

	if in.Sets <= 0 || in.Reps <= 0 {
		return nil, fmt.Errorf("%w: sets and reps must be positive", domain.ErrInvalidInput)
	}
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	ex, err := s.exercises.FindByID(ctx, in.ExerciseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("exercise %s: %w", in.ExerciseID, domain.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now.Truncate(24 * time.Hour)
	}

	created, err := s.logs.Create(ctx, &domain.WorkoutLog{
		OwnerID:             owner,
		ExerciseID:          ex.ID,
		ExerciseName:        ex.Name,
		ExerciseDescription: ex.Description,
		Sets:                in.Sets,
		Reps:                in.Reps,
		Date:                date.UTC(),
		DurationMinutes:     in.DurationMinutes,
		Notes:               strings.TrimSpace(in.Notes),
		CreatedAt:           now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", owner).Msg("failed to create log")
		return nil, err
	}

	s.log.Info().Str("log_id", created.ID).Str("user_id", owner).Str("by", caller.ID).Msg("log created")
	s.events.Publish(ctx, domain.Event{
		Type:       domain.EventLogCreated,
		OwnerID:    owner,
		ResourceID: created.ID,
		OccurredAt: now,
	})
	return created, nil
}

func (s *WorkoutLogService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.WorkoutLog, error) {
	wl, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceLog, Operation: auth.OpRead}, wl.OwnerID); err != nil {
		return nil, err
	}
	return wl, nil
}

// List returns every log for trainers and the caller's own logs otherwise.
func (s *WorkoutLogService) List(ctx context.Context, caller *domain.Identity) ([]*domain.WorkoutLog, error) {
	owner := ""
	if caller != nil && !caller.IsTrainer() {
		owner = caller.ID
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceLog, Operation: auth.OpList}, owner); err != nil {
		return nil, err
	}
	return s.logs.List(ctx, owner)
}

func (s *WorkoutLogService) Update(ctx context.Context, caller *domain.Identity, id string, patch domain.WorkoutLogPatch) (*domain.WorkoutLog, error) {
	existing, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceLog, Operation: auth.OpUpdate}, existing.OwnerID); err != nil {
		return nil, err
	}
	if patch.DurationMinutes != nil && *patch.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	if patch.DurationMinutes == nil && patch.Notes == nil {
		return existing, nil
	}
	return s.logs.Update(ctx, id, patch)
}

func (s *WorkoutLogService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	existing, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceLog, Operation: auth.OpDelete}, existing.OwnerID); err != nil {
		return err
	}
	return s.logs.Delete(ctx, id)
}
