package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		identity *domain.Identity
		want     error
	}{
		{"trainer allowed", &domain.Identity{ID: "t", Role: domain.RoleTrainer}, nil},
		{"user denied", &domain.Identity{ID: "u", Role: domain.RoleUser}, domain.ErrForbidden},
		{"anonymous", nil, domain.ErrUnauthenticated},
	}

	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/exercises", nil), rec)
		if tc.identity != nil {
			c.Set(IdentityKey, tc.identity)
		}

		called := false
		h := RequireRole(domain.RoleTrainer)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		err := h(c)

		if tc.want == nil {
			if err != nil || !called {
				t.Errorf("%s: expected next to run, got %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if called {
			t.Errorf("%s: next must not run", tc.name)
		}
	}
}

func TestRequireRole_MessageNamesRole(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(IdentityKey, &domain.Identity{ID: "u", Role: domain.RoleUser})

	err := RequireRole(domain.RoleTrainer)(func(echo.Context) error { return nil })(c)
	if err == nil || err.Error() != "access forbidden: requires role trainer" {
		t.Fatalf("unexpected error: %v", err)
	}
}
