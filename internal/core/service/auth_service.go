package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
	"github.com/gymguider/fitness-api/internal/pkg/metrics"
)

// PasswordHasher abstracts the one-way credential hash (bcrypt).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	VerifyDummy(plaintext string)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(email string, role domain.Role) (*ports.SessionToken, error)
}

// TokenVerifier resolves a session token to the current Identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthService implements registration, login and token resolution.
type AuthService struct {
	repo     ports.IdentityRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	verifier TokenVerifier
	limiter  ports.LoginLimiter
	events   ports.EventPublisher
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. limiter and events may be nil.
func NewAuthService(
	repo ports.IdentityRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	verifier TokenVerifier,
	limiter ports.LoginLimiter,
	events ports.EventPublisher,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		limiter:  limiter,
		events:   events,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		s.log.Warn().Str("role", in.Role).Msg("registration with invalid role")
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Identity{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Str("role", string(created.Role)).Msg("user registered")

	s.events.Publish(ctx, domain.Event{
		Type:       domain.EventUserCreated,
		OwnerID:    created.ID,
		ResourceID: created.ID,
		Attributes: map[string]string{"email": created.Email, "role": string(created.Role)},
		OccurredAt: now,
	})

	return created, nil
}

// Login authenticates email/password and returns a session token. Unknown
// email and wrong password produce the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.SessionToken, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Attempt(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return nil, domain.ErrTooManyAttempts
	}

	identity, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("login: %w", err)
		}
		s.hasher.VerifyDummy(password)
		return nil, s.failLogin()
	}

	if !s.hasher.Verify(password, identity.PasswordHash) {
		return nil, s.failLogin()
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}

	token, err := s.issuer.Issue(identity.Email, identity.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", identity.ID).Msg("user logged in")
	return token, nil
}

// CurrentIdentity satisfies ports.IdentityResolver.
func (s *AuthService) CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	return s.verifier.Verify(ctx, token)
}

// failLogin leaves the limiter counter in place; only a success resets it.
func (s *AuthService) failLogin() error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	return domain.ErrInvalidCredentials
}

type noopLimiter struct{}

func (noopLimiter) Attempt(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.Event) {}
