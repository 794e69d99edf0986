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

// WorkoutPlanService manages plans. Creating a plan also writes one workout
// log per plan exercise.
type WorkoutPlanService struct {
	plans      ports.WorkoutPlanRepository
	logs       ports.WorkoutLogRepository
	exercises  ports.ExerciseRepository
	identities ports.IdentityRepository
	policy     Authorizer
	events     ports.EventPublisher
	log        zerolog.Logger
}

func NewWorkoutPlanService(
	plans ports.WorkoutPlanRepository,
	logs ports.WorkoutLogRepository,
	exercises ports.ExerciseRepository,
	identities ports.IdentityRepository,
	policy Authorizer,
	events ports.EventPublisher,
	log zerolog.Logger,
) *WorkoutPlanService {
	if events == nil {
		events = noopPublisher{}
	}
	return &WorkoutPlanService{
		plans:      plans,
		logs:       logs,
		exercises:  exercises,
		identities: identities,
		policy:     policy,
		events:     events,
		log:        log,
	}
}

func (s *WorkoutPlanService) Create(ctx context.Context, caller *domain.Identity, in ports.WorkoutPlanInput) (*ports.CreatedPlan, error) {
	owner, err := resolveOwner(ctx, s.policy, s.identities, caller, auth.ResourcePlan, in.OwnerID)
	if err != nil {
		return nil, err
	}

	plan, catalogue, err := s.buildPlan(ctx, in)
	if err != nil {
		return nil, err
	}
	plan.OwnerID = owner
	plan.CreatedAt = time.Now().UTC()

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", owner).Msg("failed to create plan")
		return nil, err
	}

	logs := make([]*domain.WorkoutLog, 0, len(created.Exercises))
	for _, pe := range created.Exercises {
		ex := catalogue[pe.ExerciseID]
		wl, err := s.logs.Create(ctx, &domain.WorkoutLog{
			OwnerID:             owner,
			ExerciseID:          pe.ExerciseID,
			ExerciseName:        ex.Name,
			ExerciseDescription: ex.Description,
			Sets:                pe.Sets,
			Reps:                pe.Reps,
			Date:                created.StartDate,
			DurationMinutes:     created.DurationDays(),
			Notes:               created.Title,
			CreatedAt:           created.CreatedAt,
		})
		if err != nil {
			s.rollbackPlan(ctx, created, logs)
			return nil, fmt.Errorf("create logs for plan %s: %w", created.ID, err)
		}
		logs = append(logs, wl)
	}

	s.log.Info().Str("plan_id", created.ID).Str("user_id", owner).Str("by", caller.ID).Msg("plan created")
	s.events.Publish(ctx, domain.Event{
		Type:       domain.EventPlanCreated,
		OwnerID:    owner,
		ResourceID: created.ID,
		Attributes: map[string]string{"title": created.Title},
		OccurredAt: created.CreatedAt,
	})
	for _, wl := range logs {
		s.events.Publish(ctx, domain.Event{
			Type:       domain.EventLogCreated,
			OwnerID:    owner,
			ResourceID: wl.ID,
			Attributes: map[string]string{"plan_id": created.ID},
			OccurredAt: wl.CreatedAt,
		})
	}

	return &ports.CreatedPlan{Plan: created, Logs: logs}, nil
}

// rollbackPlan removes a plan and the logs generated for it so far. Failures
// are logged; the original error is what the caller sees.
func (s *WorkoutPlanService) rollbackPlan(ctx context.Context, plan *domain.WorkoutPlan, logs []*domain.WorkoutLog) {
	for _, wl := range logs {
		if err := s.logs.Delete(ctx, wl.ID); err != nil {
			s.log.Error().Err(err).Str("plan_id", plan.ID).Str("log_id", wl.ID).Msg("rollback: failed to delete generated log")
		}
	}
	if err := s.plans.Delete(ctx, plan.ID); err != nil {
		s.log.Error().Err(err).Str("plan_id", plan.ID).Msg("rollback: failed to delete plan")
	}
}

func (s *WorkoutPlanService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.WorkoutPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourcePlan, Operation: auth.OpRead}, plan.OwnerID); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns every plan for trainers and the caller's own plans otherwise.
func (s *WorkoutPlanService) List(ctx context.Context, caller *domain.Identity) ([]*domain.WorkoutPlan, error) {
	owner := ""
	if caller != nil && !caller.IsTrainer() {
		owner = caller.ID
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourcePlan, Operation: auth.OpList}, owner); err != nil {
		return nil, err
	}
	return s.plans.List(ctx, owner)
}

func (s *WorkoutPlanService) Update(ctx context.Context, caller *domain.Identity, id string, in ports.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	existing, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourcePlan, Operation: auth.OpUpdate}, existing.OwnerID); err != nil {
		return nil, err
	}
	if in.OwnerID != "" && in.OwnerID != existing.OwnerID {
		return nil, fmt.Errorf("%w: plan owner cannot be changed", domain.ErrInvalidInput)
	}

	plan, _, err := s.buildPlan(ctx, in)
	if err != nil {
		return nil, err
	}
	plan.ID = existing.ID
	plan.OwnerID = existing.OwnerID
	plan.CreatedAt = existing.CreatedAt

	return s.plans.Replace(ctx, plan)
}

func (s *WorkoutPlanService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	existing, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourcePlan, Operation: auth.OpDelete}, existing.OwnerID); err != nil {
		return err
	}
	return s.plans.Delete(ctx, id)
}

// buildPlan validates input and resolves every referenced exercise before
// anything is written.
func (s *WorkoutPlanService) buildPlan(ctx context.Context, in ports.WorkoutPlanInput) (*domain.WorkoutPlan, map[string]*domain.Exercise, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	level, err := domain.ParsePlanLevel(in.Level)
	if err != nil {
		return nil, nil, err
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: start_date and end_date are required", domain.ErrInvalidInput)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, nil, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrInvalidInput)
	}

	catalogue := make(map[string]*domain.Exercise, len(in.Exercises))
	entries := make([]domain.PlanExercise, 0, len(in.Exercises))
	for i, pe := range in.Exercises {
		if pe.Sets <= 0 || pe.Reps <= 0 {
			return nil, nil, fmt.Errorf("%w: exercises[%d]: sets and reps must be positive", domain.ErrInvalidInput, i)
		}
		ex, ok := catalogue[pe.ExerciseID]
		if !ok {
			ex, err = s.exercises.FindByID(ctx, pe.ExerciseID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil, fmt.Errorf("exercise %s: %w", pe.ExerciseID, domain.ErrNotFound)
				}
				return nil, nil, err
			}
			catalogue[pe.ExerciseID] = ex
		}

		rest := domain.DefaultRestSeconds
		if pe.RestSeconds != nil {
			if *pe.RestSeconds < 0 {
				return nil, nil, fmt.Errorf("%w: exercises[%d]: rest_seconds must not be negative", domain.ErrInvalidInput, i)
			}
			rest = *pe.RestSeconds
		}
		entries = append(entries, domain.PlanExercise{
			ExerciseID:  pe.ExerciseID,
			Name:        ex.Name,
			Sets:        pe.Sets,
			Reps:        pe.Reps,
			RestSeconds: rest,
		})
	}

	return &domain.WorkoutPlan{
		Title:     title,
		Level:     level,
		Exercises: entries,
		StartDate: in.StartDate.UTC(),
		EndDate:   in.EndDate.UTC(),
	}, catalogue, nil
}
