package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/booking-platform/services/internal/api/metrics"
	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
	metrics *metrics.Metrics
}

func NewUserHandler(service ports.UserService, m *metrics.Metrics) *UserHandler {
	return &UserHandler{service: service, metrics: m}
}

// List handles GET /api/users/.
//
// @Summary      List users
// @Description  Newest first. An empty user_type is ignored; active filters whenever present and is true only for "true" (any case).
// @Tags         users
// @Produce      json
// @Param        user_type  query     string  false  "Filter by type"  Enums(customer, administrator, employee)
// @Param        active     query     string  false  "Filter by active flag"
// @Success      200        {array}   userResponse
// @Failure      500        {object}  errorResponse
// @Router       /api/users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), userFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(items))
}

func userFilter(c echo.Context) ports.UserFilter {
	f := ports.UserFilter{UserType: c.QueryParam("user_type")}
	if values, ok := c.QueryParams()["active"]; ok && len(values) > 0 {
		active := strings.EqualFold(values[len(values)-1], "true")
		f.Active = &active
	}
	return f
}

// Active handles GET /api/users/active/.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/active/ [get]
func (h *UserHandler) Active(c echo.Context) error {
	items, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(items))
}

// Create handles POST /api/users/.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string       false  "Replays the earlier response when reused"
// @Param        body             body      userRequest  true   "User"
// @Success      201              {object}  userResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	u, replayed, err := h.service.Create(c.Request().Context(), req.toInput(), c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}

	if replayed {
		c.Response().Header().Set(HeaderIdempotentReplayed, "true")
		h.metrics.IdempotentReplaysTotal.WithLabelValues("users").Inc()
	} else {
		h.metrics.UsersCreatedTotal.WithLabelValues(string(u.UserType)).Inc()
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// Get handles GET /api/users/:id/.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/{id}/ [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Update handles PUT and PATCH /api/users/:id/.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "User ID"
// @Param        body  body      userRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users/{id}/ [put]
// @Router       /api/users/{id}/ [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	u, err := h.service.Update(c.Request().Context(), id, req.toInput(), isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /api/users/:id/.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id   path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/{id}/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Activate handles POST /api/users/:id/activate/.
//
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/{id}/activate/ [post]
func (h *UserHandler) Activate(c echo.Context) error {
	return h.changeActive(c, h.service.Activate)
}

// Deactivate handles POST /api/users/:id/deactivate/.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/users/{id}/deactivate/ [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.changeActive(c, h.service.Deactivate)
}

func (h *UserHandler) changeActive(c echo.Context, action func(ctx context.Context, id int64) (*domain.User, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := action(c.Request().Context(), id)
	if err != nil {
		return err
	}
	h.metrics.UserActivationChangesTotal.WithLabelValues(strconv.FormatBool(u.Active)).Inc()
	return c.JSON(http.StatusOK, toUserResponse(u))
}
