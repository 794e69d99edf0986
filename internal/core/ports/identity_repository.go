package ports

import (
	"context"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// IdentityRepository is the credential store.
//
// Create assigns the ID and must enforce email uniqueness atomically, returning
// domain.ErrConflict for duplicates. Lookups return domain.ErrNotFound when no
// record matches. Timeouts surface as domain.ErrUnavailable.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	List(ctx context.Context) ([]*domain.Identity, error)
	Update(ctx context.Context, id string, patch domain.IdentityPatch) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
}
