package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// fakeStore is an in-memory Store/Tx pair. The Tx view operates on the
// same maps as the store; commit/rollback fidelity is not simulated
// because the engine under test never relies on partial writes.
type fakeStore struct {
	vehicles     map[uint64]model.Vehicle
	reservations map[uint64]model.Reservation
	nextID       uint64
	views        []ReservationView
	cancelled    []uint64
	purged       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles:     make(map[uint64]model.Vehicle),
		reservations: make(map[uint64]model.Reservation),
		nextID:       1,
	}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return fn(&fakeTx{s: s})
}

func (s *fakeStore) ListForCustomer(ctx context.Context, customerID uint64) ([]ReservationView, error) {
	return s.views, nil
}

func (s *fakeStore) CancelReservation(ctx context.Context, reservationID, customerID uint64) error {
	s.cancelled = append(s.cancelled, reservationID)
	if r, ok := s.reservations[reservationID]; ok && r.CustomerID == customerID {
		r.Status = model.ReservationCancelled
		s.reservations[reservationID] = r
	}
	return nil
}

func (s *fakeStore) PurgeInactive(ctx context.Context, customerID uint64) (int64, error) {
	return s.purged, nil
}

type fakeTx struct{ s *fakeStore }

func (t *fakeTx) VehicleByID(ctx context.Context, id uint64) (model.Vehicle, bool, error) {
	v, ok := t.s.vehicles[id]
	return v, ok, nil
}

func (t *fakeTx) ActiveDuplicateExists(ctx context.Context, customerID, vehicleID uint64, startDate, endDate string) (bool, error) {
	for _, r := range t.s.reservations {
		if r.CustomerID == customerID && r.VehicleID == vehicleID &&
			r.StartDate == startDate && r.EndDate == endDate &&
			r.Status == model.ReservationActive {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	res.ID = t.s.nextID
	t.s.nextID++
	t.s.reservations[res.ID] = *res
	return nil
}

func (t *fakeTx) ReservationByID(ctx context.Context, reservationID, customerID uint64) (model.Reservation, bool, error) {
	r, ok := t.s.reservations[reservationID]
	if !ok || r.CustomerID != customerID {
		return model.Reservation{}, false, nil
	}
	return r, true, nil
}

func (t *fakeTx) UpdateReservationDates(ctx context.Context, reservationID uint64, startDate, endDate string, totalCents int64) error {
	r := t.s.reservations[reservationID]
	r.StartDate = startDate
	r.EndDate = endDate
	r.TotalCents = totalCents
	t.s.reservations[reservationID] = r
	return nil
}

// fakePending records the last written cell per customer.
type fakePending struct {
	cells   map[uint64]PendingCell
	cleared []uint64
}

func newFakePending() *fakePending {
	return &fakePending{cells: make(map[uint64]PendingCell)}
}

func (p *fakePending) Set(ctx context.Context, customerID uint64, cell PendingCell) error {
	p.cells[customerID] = cell
	return nil
}

func (p *fakePending) Clear(ctx context.Context, customerID uint64) error {
	delete(p.cells, customerID)
	p.cleared = append(p.cleared, customerID)
	return nil
}

func testEngine(t *testing.T) (*Engine, *fakeStore, *fakePending) {
	t.Helper()
	store := newFakeStore()
	store.vehicles[2] = model.Vehicle{ID: 2, Make: "Honda", Model: "Civic", DailyRateCents: 4500}
	pending := newFakePending()
	return NewEngine(store, pending), store, pending
}

func TestCreatePricesInclusiveDays(t *testing.T) {
	eng, store, pending := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	assert.Equal(t, int64(3*4500), res.TotalCents)
	assert.Equal(t, model.ReservationActive, res.Status)
	assert.NotZero(t, res.ID)
	assert.Len(t, store.reservations, 1)

	cell, ok := pending.cells[7]
	require.True(t, ok)
	assert.Equal(t, int64(13500), cell.AmountDueCents)
	assert.Nil(t, cell.DeltaCents)
}

func TestCreateSingleDayCountsAsOne(t *testing.T) {
	eng, _, _ := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(4500), res.TotalCents)
}

func TestCreateUnknownVehicle(t *testing.T) {
	eng, store, pending := testEngine(t)

	_, err := eng.Create(context.Background(), 7, 99, "2024-06-01", "2024-06-03")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	assert.Empty(t, store.reservations)
	assert.Empty(t, pending.cells)
}

func TestCreateInvalidRangeWritesNothing(t *testing.T) {
	eng, store, pending := testEngine(t)

	_, err := eng.Create(context.Background(), 7, 2, "2024-06-03", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Empty(t, store.reservations)
	assert.Empty(t, pending.cells)
}

func TestCreateExactDuplicateRejected(t *testing.T) {
	eng, store, _ := testEngine(t)

	_, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	_, err = eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.Len(t, store.reservations, 1)

	// A different range on the same vehicle is a separate booking.
	_, err = eng.Create(context.Background(), 7, 2, "2024-06-04", "2024-06-05")
	require.NoError(t, err)
	assert.Len(t, store.reservations, 2)
}

func TestAmendRepricesAndReportsDelta(t *testing.T) {
	eng, _, pending := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	amended, delta, err := eng.Amend(context.Background(), res.ID, 7, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	assert.Equal(t, int64(5*4500), amended.TotalCents)
	assert.Equal(t, int64(9000), delta)
	assert.Equal(t, "2024-06-05", amended.EndDate)

	cell, ok := pending.cells[7]
	require.True(t, ok)
	assert.Equal(t, int64(22500), cell.AmountDueCents)
	require.NotNil(t, cell.DeltaCents)
	assert.Equal(t, int64(9000), *cell.DeltaCents)
}

func TestAmendShorterRangeHasNoDeltaCell(t *testing.T) {
	eng, _, pending := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-05")
	require.NoError(t, err)

	amended, delta, err := eng.Amend(context.Background(), res.ID, 7, "2024-06-01", "2024-06-02")
	require.NoError(t, err)

	assert.Equal(t, int64(9000), amended.TotalCents)
	assert.Equal(t, int64(-13500), delta)

	cell, ok := pending.cells[7]
	require.True(t, ok)
	assert.Equal(t, int64(9000), cell.AmountDueCents)
	assert.Nil(t, cell.DeltaCents)
}

func TestAmendUnknownReservation(t *testing.T) {
	eng, _, _ := testEngine(t)

	_, _, err := eng.Amend(context.Background(), 42, 7, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestAmendForeignReservationIsNotFound(t *testing.T) {
	eng, _, _ := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	_, _, err = eng.Amend(context.Background(), res.ID, 8, "2024-06-01", "2024-06-02")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestAmendCancelledReservation(t *testing.T) {
	eng, _, _ := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
	require.NoError(t, eng.Cancel(context.Background(), res.ID, 7))

	_, _, err = eng.Amend(context.Background(), res.ID, 7, "2024-06-01", "2024-06-05")
	assert.ErrorIs(t, err, ErrReservationNotActive)
}

func TestCancelIsIdempotent(t *testing.T) {
	eng, store, _ := testEngine(t)

	res, err := eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)

	require.NoError(t, eng.Cancel(context.Background(), res.ID, 7))
	require.NoError(t, eng.Cancel(context.Background(), res.ID, 7))

	assert.Equal(t, model.ReservationCancelled, store.reservations[res.ID].Status)

	// Once cancelled the exact tuple can be booked again.
	_, err = eng.Create(context.Background(), 7, 2, "2024-06-01", "2024-06-03")
	require.NoError(t, err)
}

func TestPurgeInactiveReportsCount(t *testing.T) {
	eng, store, _ := testEngine(t)
	store.purged = 3

	n, err := eng.PurgeInactive(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestListRecomputesTotals(t *testing.T) {
	eng, store, _ := testEngine(t)
	store.views = []ReservationView{
		{ID: 1, StartDate: "2024-06-01", EndDate: "2024-06-03", DailyRateCents: 5000, TotalCents: 13500},
		{ID: 2, StartDate: "bad", EndDate: "2024-06-03", DailyRateCents: 5000, TotalCents: 9000},
	}

	views, err := eng.ListForCustomer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Repriced at the current rate, not the stored total.
	assert.Equal(t, int64(15000), views[0].TotalCents)
	// Malformed dates keep the stored total.
	assert.Equal(t, int64(9000), views[1].TotalCents)
}
