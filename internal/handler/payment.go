package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/queue"
	queue_publisher "github.com/iliyamo/car-rental-reservation/internal/service"
)

// paymentLedger is the slice of repository.PaymentRepo the handler needs.
type paymentLedger interface {
	ReservationForCustomer(ctx context.Context, reservationID, customerID uint64) (model.Reservation, error)
	Create(ctx context.Context, p *model.Payment) error
}

// vehicleCatalog is the slice of repository.VehicleRepo used to enrich
// confirmation events.
type vehicleCatalog interface {
	GetByID(ctx context.Context, id uint64) (model.Vehicle, error)
}

// pendingCarrier is the read/clear side of pending.Store.
type pendingCarrier interface {
	Get(ctx context.Context, customerID uint64) (booking.PendingCell, bool, error)
	Clear(ctx context.Context, customerID uint64) error
}

// PaymentHandler records card details against a reservation and clears
// the customer's pending amount. Card data is stored as submitted; no
// charge is attempted against any payment network.
type PaymentHandler struct {
	Payments paymentLedger
	Vehicles vehicleCatalog
	Pending  pendingCarrier

	publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

func NewPaymentHandler(p paymentLedger, v vehicleCatalog, pc pendingCarrier) *PaymentHandler {
	if p == nil || v == nil || pc == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{
		Payments: p,
		Vehicles: v,
		Pending:  pc,
		publish:  queue_publisher.PublishReservationConfirmed,
	}
}

type paymentReq struct {
	CardNumber   string `json:"card_number"`
	Cardholder   string `json:"cardholder"`
	Expiry       string `json:"expiry"`
	SecurityCode string `json:"security_code"`
}

// PendingAmount handles GET /v1/payments/pending. When nothing is owed
// the amount is zero and present=false; the cell also expires on its own
// after a configured TTL.
func (h *PaymentHandler) PendingAmount(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cell, found, err := h.Pending.Get(ctx, customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pending lookup failed"})
	}
	if !found {
		return c.JSON(http.StatusOK, echo.Map{
			"present":          false,
			"amount_due_cents": int64(0),
			"amount_due":       0.0,
		})
	}
	resp := echo.Map{
		"present":          true,
		"amount_due_cents": cell.AmountDueCents,
		"amount_due":       cents(cell.AmountDueCents),
	}
	if cell.DeltaCents != nil {
		resp["delta_cents"] = *cell.DeltaCents
		resp["delta"] = cents(*cell.DeltaCents)
	}
	return c.JSON(http.StatusOK, resp)
}

// Pay handles POST /v1/reservations/:id/payment. The reservation must
// belong to the caller. On success the pending cell is cleared and a
// confirmation event is published best-effort.
func (h *PaymentHandler) Pay(c echo.Context) error {
	customerID, err := getCustomerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CardNumber = strings.TrimSpace(req.CardNumber)
	req.Cardholder = strings.TrimSpace(req.Cardholder)
	req.Expiry = strings.TrimSpace(req.Expiry)
	req.SecurityCode = strings.TrimSpace(req.SecurityCode)
	if req.CardNumber == "" || req.Cardholder == "" || req.Expiry == "" || req.SecurityCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "card_number/cardholder/expiry/security_code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Payments.ReservationForCustomer(ctx, reservationID, customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p := &model.Payment{
		ReservationID: reservationID,
		CardNumber:    req.CardNumber,
		Cardholder:    req.Cardholder,
		Expiry:        req.Expiry,
		SecurityCode:  req.SecurityCode,
	}
	if err := h.Payments.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save payment failed"})
	}

	if err := h.Pending.Clear(ctx, customerID); err != nil {
		log.Printf("payment: clear pending for customer %d: %v", customerID, err)
	}

	h.publishConfirmed(ctx, res)

	return c.JSON(http.StatusCreated, echo.Map{
		"payment_id":     p.ID,
		"reservation_id": reservationID,
		"total_cents":    res.TotalCents,
		"total":          cents(res.TotalCents),
	})
}

// publishConfirmed emits the reservation.confirmed event. Failures are
// logged and swallowed so payment recording never depends on the broker.
func (h *PaymentHandler) publishConfirmed(ctx context.Context, res model.Reservation) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		CustomerID:    res.CustomerID,
		StartDate:     res.StartDate,
		EndDate:       res.EndDate,
		TotalCents:    res.TotalCents,
		PaidAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if v, err := h.Vehicles.GetByID(ctx, res.VehicleID); err == nil {
		ev.VehicleMake = v.Make
		ev.VehicleModel = v.Model
	}
	if err := h.publish(ctx, ev); err != nil {
		log.Printf("payment: publish confirmation for reservation %d: %v", res.ID, err)
	}
}
