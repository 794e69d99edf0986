package ports

import (
	"context"
	"time"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// RegisterInput is the registration request after transport decoding.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// SessionToken is a signed bearer credential.
type SessionToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*SessionToken, error)
}

// IdentityResolver turns a bearer token into the caller's current Identity.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error)
}

// LoginLimiter counts login attempts per email since the last success.
// Attempt counts one attempt and reports whether it is within the limit in a
// single step, so concurrent attempts cannot exceed it.
type LoginLimiter interface {
	Attempt(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}
