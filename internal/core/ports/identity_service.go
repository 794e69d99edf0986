package ports

import (
	"context"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// IdentityService manages identities on behalf of an authenticated caller.
type IdentityService interface {
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Identity, error)
	Get(ctx context.Context, caller *domain.Identity, id string) (*domain.Identity, error)
	Update(ctx context.Context, caller *domain.Identity, id string, patch domain.IdentityPatch) (*domain.Identity, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error
}
