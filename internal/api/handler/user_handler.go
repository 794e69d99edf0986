package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

// UserHandler exposes account management. Ownership is enforced by the service.
type UserHandler struct {
	service ports.IdentityService
}

func NewUserHandler(service ports.IdentityService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   identityView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context(), me)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityViews(users))
}

// Get handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  identityView
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), me, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityView(user))
}

// Update handles PUT /users/:id.
//
// @Summary      Update a user's name or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  identityView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), me, c.Param("id"), domain.IdentityPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityView(user))
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), me, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
