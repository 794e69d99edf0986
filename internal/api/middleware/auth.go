package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the authenticated *domain.Identity.
const IdentityKey = "identity"

// Auth resolves the bearer token to the caller's current Identity and injects
// it into the context. Every rejection returns domain.ErrUnauthenticated so
// clients cannot tell a missing header from an expired token.
func Auth(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				log.Debug().Str("path", c.Path()).Msg("missing or malformed authorization header")
				return domain.ErrUnauthenticated
			}

			identity, err := resolver.CurrentIdentity(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity injected by Auth, or nil.
func CurrentIdentity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(IdentityKey).(*domain.Identity)
	return identity
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
