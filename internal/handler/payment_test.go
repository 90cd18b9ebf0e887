package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/queue"
)

// memLedger backs the payment handler with maps so it can be exercised
// without MySQL.
type memLedger struct {
	reservations map[uint64]model.Reservation
	payments     []model.Payment
}

func (l *memLedger) ReservationForCustomer(ctx context.Context, reservationID, customerID uint64) (model.Reservation, error) {
	r, ok := l.reservations[reservationID]
	if !ok || r.CustomerID != customerID {
		return model.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (l *memLedger) Create(ctx context.Context, p *model.Payment) error {
	p.ID = uint64(len(l.payments) + 1)
	l.payments = append(l.payments, *p)
	return nil
}

type memCatalog struct{ vehicles map[uint64]model.Vehicle }

func (c *memCatalog) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	v, ok := c.vehicles[id]
	if !ok {
		return model.Vehicle{}, sql.ErrNoRows
	}
	return v, nil
}

func newPaymentTestHandler() (*PaymentHandler, *memLedger, *memPending, *[]queue.ReservationConfirmedEvent) {
	ledger := &memLedger{reservations: map[uint64]model.Reservation{
		1: {ID: 1, CustomerID: 7, VehicleID: 2, StartDate: "2024-06-01", EndDate: "2024-06-03",
			TotalCents: 13500, Status: model.ReservationActive},
	}}
	catalog := &memCatalog{vehicles: map[uint64]model.Vehicle{
		2: {ID: 2, Make: "Honda", Model: "Civic", DailyRateCents: 4500},
	}}
	pend := &memPending{cells: make(map[uint64]booking.PendingCell)}

	h := NewPaymentHandler(ledger, catalog, pend)
	published := &[]queue.ReservationConfirmedEvent{}
	h.publish = func(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
		*published = append(*published, ev)
		return nil
	}
	return h, ledger, pend, published
}

const cardBody = `{"card_number":"4111111111111111","cardholder":"Alice","expiry":"12/27","security_code":"123"}`

func TestPayClearsPendingEvenWithDelta(t *testing.T) {
	h, ledger, pend, published := newPaymentTestHandler()

	// An amendment left a delta in the cell; paying must wipe all of it.
	delta := int64(9000)
	pend.cells[7] = booking.PendingCell{AmountDueCents: 22500, DeltaCents: &delta}

	c, rec := authedCtx(http.MethodPost, "/v1/reservations/1/payment", cardBody, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Pay(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, ledger.payments, 1)
	assert.Equal(t, uint64(1), ledger.payments[0].ReservationID)
	assert.Equal(t, "Alice", ledger.payments[0].Cardholder)

	_, found, err := pend.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, found)

	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(1), ev.ReservationID)
	assert.Equal(t, "Honda", ev.VehicleMake)
	assert.Equal(t, "Civic", ev.VehicleModel)
	assert.Equal(t, int64(13500), ev.TotalCents)
}

func TestPayUnknownReservation(t *testing.T) {
	h, ledger, pend, published := newPaymentTestHandler()
	pend.cells[7] = booking.PendingCell{AmountDueCents: 13500}

	c, rec := authedCtx(http.MethodPost, "/v1/reservations/42/payment", cardBody, 7)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Pay(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, ledger.payments)
	assert.Empty(t, *published)

	// A failed payment leaves the amount owed in place.
	_, found, err := pend.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestPayForeignReservationIsNotFound(t *testing.T) {
	h, ledger, _, _ := newPaymentTestHandler()

	c, rec := authedCtx(http.MethodPost, "/v1/reservations/1/payment", cardBody, 8)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Pay(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, ledger.payments)
}

func TestPayRequiresCardFields(t *testing.T) {
	h, ledger, _, _ := newPaymentTestHandler()

	c, rec := authedCtx(http.MethodPost, "/v1/reservations/1/payment",
		`{"card_number":"4111111111111111","cardholder":"  "}`, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Pay(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ledger.payments)
}

func TestPendingAmountView(t *testing.T) {
	h, _, pend, _ := newPaymentTestHandler()

	// Empty cell: zero amount, present=false.
	c, rec := authedCtx(http.MethodGet, "/v1/payments/pending", "", 7)
	require.NoError(t, h.PendingAmount(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var empty struct {
		Present        bool  `json:"present"`
		AmountDueCents int64 `json:"amount_due_cents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.False(t, empty.Present)
	assert.Zero(t, empty.AmountDueCents)

	// Cell with delta: both amount and delta surface.
	delta := int64(9000)
	pend.cells[7] = booking.PendingCell{AmountDueCents: 22500, DeltaCents: &delta}
	c, rec = authedCtx(http.MethodGet, "/v1/payments/pending", "", 7)
	require.NoError(t, h.PendingAmount(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var full struct {
		Present        bool  `json:"present"`
		AmountDueCents int64 `json:"amount_due_cents"`
		DeltaCents     int64 `json:"delta_cents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &full))
	assert.True(t, full.Present)
	assert.Equal(t, int64(22500), full.AmountDueCents)
	assert.Equal(t, int64(9000), full.DeltaCents)
}
