package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

type LogHandler struct {
	service ports.WorkoutLogService
}

func NewLogHandler(service ports.WorkoutLogService) *LogHandler {
	return &LogHandler{service: service}
}

// Create handles POST /logs.
//
// @Summary      Record a workout
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logRequest  true  "Workout log"
// @Success      201   {object}  domain.WorkoutLog
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /logs [post]
func (h *LogHandler) Create(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req logRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toLogInput(req)
	if err != nil {
		return err
	}

	wl, err := h.service.Create(c.Request().Context(), me, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, wl)
}

// List handles GET /logs. Trainers see every log, users their own.
//
// @Summary      List workout logs
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.WorkoutLog
// @Router       /logs [get]
func (h *LogHandler) List(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	logs, err := h.service.List(c.Request().Context(), me)
	if err != nil {
		return err
	}
	if logs == nil {
		logs = []*domain.WorkoutLog{}
	}
	return c.JSON(http.StatusOK, logs)
}

// Get handles GET /logs/:id.
//
// @Summary      Get a workout log
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Log ID"
// @Success      200  {object}  domain.WorkoutLog
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /logs/{id} [get]
func (h *LogHandler) Get(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	wl, err := h.service.Get(c.Request().Context(), me, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wl)
}

// Update handles PUT /logs/:id.
//
// @Summary      Update duration or notes of a workout log
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Log ID"
// @Param        body  body      updateLogRequest  true  "Fields to change"
// @Success      200   {object}  domain.WorkoutLog
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /logs/{id} [put]
func (h *LogHandler) Update(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req updateLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	wl, err := h.service.Update(c.Request().Context(), me, c.Param("id"), domain.WorkoutLogPatch{
		DurationMinutes: req.Duration,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wl)
}

// Delete handles DELETE /logs/:id.
//
// @Summary      Delete a workout log
// @Tags         logs
// @Security     BearerAuth
// @Param        id   path  string  true  "Log ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /logs/{id} [delete]
func (h *LogHandler) Delete(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), me, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
