package auth

import (
	"fmt"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/pkg/metrics"
)

// Resource is the kind of object an action targets.
type Resource string

const (
	ResourceIdentity Resource = "identity"
	ResourceExercise Resource = "exercise"
	ResourcePlan     Resource = "plan"
	ResourceLog      Resource = "log"
)

// Operation is what the caller wants to do with a resource.
type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Action pairs a resource kind with an operation.
type Action struct {
	Resource  Resource
	Operation Operation
}

// Policy is the stateless authorization rule set:
//
//	trainer                        → permit everything
//	exercise list/read             → any authenticated caller
//	exercise create/update/delete  → trainer only
//	identity/plan/log              → permit when caller.ID == target owner
//
// An empty target owner means "all records" and is trainer only.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// Check returns nil to permit, or an error wrapping domain.ErrForbidden that
// names the violated rule. A nil caller is domain.ErrUnauthenticated.
func (p *Policy) Check(caller *domain.Identity, action Action, targetOwnerID string) error {
	if caller == nil || !caller.Role.Valid() {
		return domain.ErrUnauthenticated
	}

	err := p.decide(caller, action, targetOwnerID)
	decision := "permit"
	if err != nil {
		decision = "deny"
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(string(action.Resource), decision).Inc()
	return err
}

func (p *Policy) decide(caller *domain.Identity, action Action, targetOwnerID string) error {
	if caller.Role == domain.RoleTrainer {
		return nil
	}

	if action.Resource == ResourceExercise {
		if action.Operation == OpList || action.Operation == OpRead {
			return nil
		}
		return fmt.Errorf("%w: only trainers can manage exercises", domain.ErrForbidden)
	}

	noun := nounFor(action.Resource)
	if targetOwnerID == "" {
		return fmt.Errorf("%w: only trainers can list all %s", domain.ErrForbidden, noun)
	}
	if caller.ID == targetOwnerID {
		return nil
	}

	switch action.Operation {
	case OpCreate:
		return fmt.Errorf("%w: you can only create your own %s", domain.ErrForbidden, noun)
	case OpUpdate:
		return fmt.Errorf("%w: you can only update your own %s", domain.ErrForbidden, noun)
	case OpDelete:
		return fmt.Errorf("%w: you can only delete your own %s", domain.ErrForbidden, noun)
	default:
		return fmt.Errorf("%w: you can only access your own %s", domain.ErrForbidden, noun)
	}
}

func nounFor(r Resource) string {
	switch r {
	case ResourceIdentity:
		return "account"
	case ResourcePlan:
		return "plans"
	case ResourceLog:
		return "logs"
	default:
		return string(r) + "s"
	}
}
