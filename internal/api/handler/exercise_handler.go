package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/ports"
)

type ExerciseHandler struct {
	service ports.ExerciseService
}

func NewExerciseHandler(service ports.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// List handles GET /exercises.
//
// @Summary      List the exercise catalogue
// @Tags         exercises
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Exercise
// @Failure      401  {object}  errorResponse
// @Router       /exercises [get]
func (h *ExerciseHandler) List(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	exercises, err := h.service.List(c.Request().Context(), me)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exercises)
}

// Get handles GET /exercises/:id.
//
// @Summary      Get an exercise
// @Tags         exercises
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Exercise ID"
// @Success      200  {object}  domain.Exercise
// @Failure      404  {object}  errorResponse
// @Router       /exercises/{id} [get]
func (h *ExerciseHandler) Get(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	ex, err := h.service.Get(c.Request().Context(), me, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}

// Create handles POST /exercises.
//
// @Summary      Add an exercise to the catalogue
// @Tags         exercises
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      exerciseRequest  true  "Exercise"
// @Success      201   {object}  domain.Exercise
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /exercises [post]
func (h *ExerciseHandler) Create(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req exerciseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ex, err := h.service.Create(c.Request().Context(), me, toExerciseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ex)
}

// Update handles PUT /exercises/:id.
//
// @Summary      Replace an exercise
// @Tags         exercises
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Exercise ID"
// @Param        body  body      exerciseRequest  true  "Exercise"
// @Success      200   {object}  domain.Exercise
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /exercises/{id} [put]
func (h *ExerciseHandler) Update(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req exerciseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ex, err := h.service.Update(c.Request().Context(), me, c.Param("id"), toExerciseInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ex)
}

// Delete handles DELETE /exercises/:id.
//
// @Summary      Remove an exercise
// @Tags         exercises
// @Security     BearerAuth
// @Param        id   path  string  true  "Exercise ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /exercises/{id} [delete]
func (h *ExerciseHandler) Delete(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), me, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
