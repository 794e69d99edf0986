package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymguider/fitness-api/internal/core/auth"
	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

// resolveOwner picks the owner for a new plan or log and authorizes the
// caller to create for that owner. A trainer targeting someone else must name
// an existing identity.
func resolveOwner(
	ctx context.Context,
	policy Authorizer,
	identities ports.IdentityRepository,
	caller *domain.Identity,
	resource auth.Resource,
	requested string,
) (string, error) {
	owner := requested
	if owner == "" && caller != nil {
		owner = caller.ID
	}

	if err := policy.Check(caller, auth.Action{Resource: resource, Operation: auth.OpCreate}, owner); err != nil {
		return "", err
	}

	if owner != caller.ID {
		if _, err := identities.FindByID(ctx, owner); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", fmt.Errorf("user %s: %w", owner, domain.ErrNotFound)
			}
			return "", err
		}
	}
	return owner, nil
}
