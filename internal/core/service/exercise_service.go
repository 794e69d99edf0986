package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/core/auth"
	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

type ExerciseService struct {
	repo   ports.ExerciseRepository
	policy Authorizer
	log    zerolog.Logger
}

func NewExerciseService(repo ports.ExerciseRepository, policy Authorizer, log zerolog.Logger) *ExerciseService {
	return &ExerciseService{repo: repo, policy: policy, log: log}
}

func (s *ExerciseService) Create(ctx context.Context, caller *domain.Identity, in ports.ExerciseInput) (*domain.Exercise, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceExercise, Operation: auth.OpCreate}, ""); err != nil {
		return nil, err
	}

	ex, err := buildExercise(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, ex)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("exercise_id", created.ID).Str("name", created.Name).Msg("exercise created")
	return created, nil
}

func (s *ExerciseService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Exercise, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceExercise, Operation: auth.OpRead}, ""); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ExerciseService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Exercise, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceExercise, Operation: auth.OpList}, ""); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *ExerciseService) Update(ctx context.Context, caller *domain.Identity, id string, in ports.ExerciseInput) (*domain.Exercise, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceExercise, Operation: auth.OpUpdate}, ""); err != nil {
		return nil, err
	}

	ex, err := buildExercise(in)
	if err != nil {
		return nil, err
	}
	ex.ID = id
	return s.repo.Replace(ctx, ex)
}

func (s *ExerciseService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceExercise, Operation: auth.OpDelete}, ""); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("exercise_id", id).Msg("exercise deleted")
	return nil
}

func buildExercise(in ports.ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", domain.ErrInvalidInput)
	}
	typ, err := domain.ParseExerciseType(in.Type)
	if err != nil {
		return nil, err
	}
	return &domain.Exercise{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		MuscleGroup: strings.TrimSpace(in.MuscleGroup),
		Type:        typ,
	}, nil
}
