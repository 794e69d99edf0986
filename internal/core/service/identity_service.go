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

// Authorizer evaluates the access policy for a caller.
type Authorizer interface {
	Check(caller *domain.Identity, action auth.Action, targetOwnerID string) error
}

// IdentityService manages user accounts. An identity is its own owner.
type IdentityService struct {
	repo   ports.IdentityRepository
	policy Authorizer
	log    zerolog.Logger
}

func NewIdentityService(repo ports.IdentityRepository, policy Authorizer, log zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, policy: policy, log: log}
}

func (s *IdentityService) List(ctx context.Context, caller *domain.Identity) ([]*domain.Identity, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceIdentity, Operation: auth.OpList}, ""); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *IdentityService) Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Identity, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceIdentity, Operation: auth.OpRead}, id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *IdentityService) Update(ctx context.Context, caller *domain.Identity, id string, patch domain.IdentityPatch) (*domain.Identity, error) {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceIdentity, Operation: auth.OpUpdate}, id); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
		}
		patch.Email = &email
	}
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("by", caller.ID).Msg("user updated")
	return updated, nil
}

func (s *IdentityService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	if err := s.policy.Check(caller, auth.Action{Resource: auth.ResourceIdentity, Operation: auth.OpDelete}, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("by", caller.ID).Msg("user deleted")
	return nil
}
