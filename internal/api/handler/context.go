package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/api/middleware"
	"github.com/gymguider/fitness-api/internal/core/domain"
)

// caller returns the identity injected by the Auth middleware. A missing
// identity means the route was wired without Auth and is treated as
// unauthenticated.
func caller(c echo.Context) (*domain.Identity, error) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
// Both failures are domain.ErrInvalidInput.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
