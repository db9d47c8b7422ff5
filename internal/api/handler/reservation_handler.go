package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/booking-platform/services/internal/api/metrics"
	"github.com/booking-platform/services/internal/core/domain"
	"github.com/booking-platform/services/internal/core/ports"
)

// ReservationHandler handles HTTP requests for reservation operations.
// Errors are returned to the central HTTP error handler.
type ReservationHandler struct {
	service ports.ReservationService
	metrics *metrics.Metrics
}

func NewReservationHandler(service ports.ReservationService, m *metrics.Metrics) *ReservationHandler {
	return &ReservationHandler{service: service, metrics: m}
}

// List handles GET /api/reservations/.
//
// @Summary      List reservations
// @Description  Newest reservation_time first. An empty status filter is ignored.
// @Tags         reservations
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(pending, confirmed, cancelled, completed)
// @Success      200     {array}   reservationResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/reservations/ [get]
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), ports.ReservationFilter{
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponses(items))
}

// Create handles POST /api/reservations/.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Replays the earlier response when reused"
// @Param        body             body      reservationRequest  true   "Reservation"
// @Success      201              {object}  reservationResponse
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/reservations/ [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	r, replayed, err := h.service.Create(c.Request().Context(), in, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}

	if replayed {
		c.Response().Header().Set(HeaderIdempotentReplayed, "true")
		h.metrics.IdempotentReplaysTotal.WithLabelValues("reservations").Inc()
	} else {
		h.metrics.ReservationsCreatedTotal.Inc()
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// Get handles GET /api/reservations/:id/.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  reservationResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reservations/{id}/ [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Update handles PUT and PATCH /api/reservations/:id/. PUT requires the
// required fields; PATCH changes only the fields sent.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Reservation ID"
// @Param        body  body      reservationRequest  true  "Fields to change"
// @Success      200   {object}  reservationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/reservations/{id}/ [put]
// @Router       /api/reservations/{id}/ [patch]
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req reservationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	r, err := h.service.Update(c.Request().Context(), id, in, isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// Delete handles DELETE /api/reservations/:id/.
//
// @Summary      Delete a reservation
// @Tags         reservations
// @Param        id   path  int  true  "Reservation ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reservations/{id}/ [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Confirm handles POST /api/reservations/:id/confirm/.
//
// @Summary      Confirm a reservation
// @Description  Sets status to confirmed regardless of the current status.
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  reservationResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reservations/{id}/confirm/ [post]
func (h *ReservationHandler) Confirm(c echo.Context) error {
	return h.changeStatus(c, h.service.Confirm)
}

// Cancel handles POST /api/reservations/:id/cancel/.
//
// @Summary      Cancel a reservation
// @Description  Sets status to cancelled regardless of the current status.
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  reservationResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/reservations/{id}/cancel/ [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.changeStatus(c, h.service.Cancel)
}

func (h *ReservationHandler) changeStatus(c echo.Context, action func(ctx context.Context, id int64) (*domain.Reservation, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	r, err := action(c.Request().Context(), id)
	if err != nil {
		return err
	}
	h.metrics.ReservationStatusChangesTotal.WithLabelValues(string(r.Status)).Inc()
	return c.JSON(http.StatusOK, toReservationResponse(r))
}
