package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

// RequireRole enforces coarse role-based access control ahead of the
// per-resource policy checks in the services. It must run after Auth.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	names := make([]string, 0, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
		names = append(names, string(r))
	}
	denied := fmt.Errorf("%w: requires role %s", domain.ErrForbidden, strings.Join(names, " or "))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := CurrentIdentity(c)
			if identity == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[identity.Role]; !ok {
				return denied
			}
			return next(c)
		}
	}
}
