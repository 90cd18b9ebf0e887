package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// ReservationHandler exposes the reservation engine over HTTP. All
// methods assume JWT authentication has already been performed by
// middleware; the engine itself scopes every operation to the calling
// customer.
type ReservationHandler struct {
	Engine *booking.Engine
}

func NewReservationHandler(e *booking.Engine) *ReservationHandler {
	if e == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: e}
}

type reservationReq struct {
	VehicleID uint64 `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type amendReq struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type reservationResp struct {
	ID         uint64  `json:"id"`
	VehicleID  uint64  `json:"vehicle_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalCents int64   `json:"total_cents"`
	Total      float64 `json:"total"`
	Status     string  `json:"status"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:         r.ID,
		VehicleID:  r.VehicleID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		TotalCents: r.TotalCents,
		Total:      cents(r.TotalCents),
		Status:     r.Status,
	}
}

// engineError translates engine sentinels into HTTP responses. Anything
// unrecognized is a server error.
func engineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end date must not precede start date"})
	case errors.Is(err, booking.ErrVehicleNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
	case errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrDuplicateReservation):
		return c.JSON(http.StatusConflict, echo.Map{"error": "an identical active reservation already exists"})
	case errors.Is(err, booking.ErrReservationNotActive):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not active"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation operation failed"})
}

// Create handles POST /v1/reservations. On success the customer's
// pending amount is set to the reservation total and the booking is
// returned with 201.
func (h *ReservationHandler) Create(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil || req.VehicleID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vehicle_id/start_date/end_date required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Engine.Create(ctx, customerID, req.VehicleID, req.StartDate, req.EndDate)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// List handles GET /v1/reservations and returns the caller's bookings
// with totals recomputed against current daily rates.
func (h *ReservationHandler) List(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	views, err := h.Engine.ListForCustomer(ctx, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": views})
}

// Amend handles PATCH /v1/reservations/:id. The response carries the
// repriced reservation plus the delta against the prior total; a
// positive delta is also surfaced through the pending-amount view.
func (h *ReservationHandler) Amend(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req amendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date/end_date required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, delta, err := h.Engine.Amend(ctx, id, customerID, req.StartDate, req.EndDate)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation": toReservationResp(res),
		"delta_cents": delta,
		"delta":       cents(delta),
	})
}

// Cancel handles POST /v1/reservations/:id/cancel. Cancelling twice is
// fine; the second call is a no-op.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.Cancel(ctx, id, customerID); err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.ReservationCancelled})
}

// Purge handles DELETE /v1/reservations/inactive and removes every
// non-Active reservation of the caller, reporting how many went away.
func (h *ReservationHandler) Purge(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Engine.PurgeInactive(ctx, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purge failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}
