package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
	"github.com/gymguider/fitness-api/internal/pkg/metrics"
)

const (
	DefaultTokenTTL = 15 * time.Minute
	// MinSecretLength is the HS256 key size.
	MinSecretLength = 32

	tokenType = "bearer"
)

// TokenConfig is built once at startup from configuration and shared
// read-only by the issuer and verifier.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func (c TokenConfig) validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("%w: token signing secret is not set", domain.ErrConfiguration)
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("%w: token signing secret must be at least %d bytes", domain.ErrConfiguration, MinSecretLength)
	}
	return nil
}

// Clock provides time to the token code so expiry is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Claims is the signed token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  Clock
}

// NewTokenIssuer fails with domain.ErrConfiguration when no usable secret is
// configured. A nil clock selects SystemClock.
func NewTokenIssuer(cfg TokenConfig, clock Clock) (*TokenIssuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenIssuer{secret: cfg.Secret, ttl: cfg.TTL, issuer: cfg.Issuer, clock: clock}, nil
}

// Issue signs a token for subject email carrying role.
func (i *TokenIssuer) Issue(email string, role domain.Role) (*ports.SessionToken, error) {
	now := i.clock.Now()
	exp := now.Add(i.ttl)

	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &ports.SessionToken{AccessToken: signed, TokenType: tokenType, ExpiresAt: exp.UTC()}, nil
}

// VerificationError records why a token was rejected. It always unwraps to
// domain.ErrUnauthenticated; Reason is for logs and metrics only.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return domain.ErrUnauthenticated.Error()
}

func (e *VerificationError) Unwrap() error {
	return domain.ErrUnauthenticated
}

// TokenVerifier validates session tokens and resolves the subject against the
// credential store.
type TokenVerifier struct {
	secret []byte
	repo   ports.IdentityRepository
	clock  Clock
	log    zerolog.Logger
}

func NewTokenVerifier(cfg TokenConfig, repo ports.IdentityRepository, clock Clock, log zerolog.Logger) (*TokenVerifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenVerifier{secret: cfg.Secret, repo: repo, clock: clock, log: log}, nil
}

// Verify returns the current Identity for token. The role comes from the
// store record, not from the token payload.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, v.reject("missing")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, v.reject("expired")
		}
		return nil, v.reject("invalid")
	}

	if claims.Subject == "" {
		return nil, v.reject("no_subject")
	}

	identity, err := v.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, v.reject("unknown_subject")
		}
		metrics.TokenVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("verify token: %w", err)
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return identity, nil
}

func (v *TokenVerifier) reject(reason string) error {
	metrics.TokenVerificationsTotal.WithLabelValues(reason).Inc()
	v.log.Debug().Str("reason", reason).Msg("token rejected")
	return &VerificationError{Reason: reason}
}
