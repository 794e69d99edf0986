package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gymguider/fitness-api/internal/core/domain"
	"github.com/gymguider/fitness-api/internal/core/ports"
)

type PlanHandler struct {
	service ports.WorkoutPlanService
}

func NewPlanHandler(service ports.WorkoutPlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

type createPlanResponse struct {
	Plan *domain.WorkoutPlan  `json:"plan"`
	Logs []*domain.WorkoutLog `json:"logs"`
}

// Create handles POST /plans.
//
// @Summary      Create a workout plan and its initial logs
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      planRequest  true  "Plan"
// @Success      201   {object}  createPlanResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req planRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toPlanInput(req)
	if err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), me, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createPlanResponse{Plan: out.Plan, Logs: out.Logs})
}

// List handles GET /plans. Trainers see every plan, users their own.
//
// @Summary      List workout plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.WorkoutPlan
// @Failure      401  {object}  errorResponse
// @Router       /plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	plans, err := h.service.List(c.Request().Context(), me)
	if err != nil {
		return err
	}
	if plans == nil {
		plans = []*domain.WorkoutPlan{}
	}
	return c.JSON(http.StatusOK, plans)
}

// Get handles GET /plans/:id.
//
// @Summary      Get a workout plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plan ID"
// @Success      200  {object}  domain.WorkoutPlan
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /plans/{id} [get]
func (h *PlanHandler) Get(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	plan, err := h.service.Get(c.Request().Context(), me, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Update handles PUT /plans/:id.
//
// @Summary      Replace a workout plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Plan ID"
// @Param        body  body      planRequest  true  "Plan"
// @Success      200   {object}  domain.WorkoutPlan
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	var req planRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toPlanInput(req)
	if err != nil {
		return err
	}

	plan, err := h.service.Update(c.Request().Context(), me, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete handles DELETE /plans/:id.
//
// @Summary      Delete a workout plan
// @Tags         plans
// @Security     BearerAuth
// @Param        id   path  string  true  "Plan ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), me, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
