package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// BookingStore is the MySQL implementation of booking.Store. The engine's
// read-check-write sequences run inside one transaction through WithTx so
// a concurrent duplicate booking or amendment cannot interleave between
// the check and the write.
type BookingStore struct {
	db *sql.DB
}

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{db: db} }

var _ booking.Store = (*BookingStore)(nil)

// WithTx runs fn inside a transaction, committing on nil and rolling back
// otherwise.
func (s *BookingStore) WithTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&bookingTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// CancelReservation marks the customer's reservation Cancelled. The WHERE
// clause makes the statement a no-op for unknown rows and rows that are
// already Cancelled, which keeps cancellation idempotent.
func (s *BookingStore) CancelReservation(ctx context.Context, reservationID, customerID uint64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ? AND customer_id = ?`,
		model.ReservationCancelled, reservationID, customerID)
	return err
}

// PurgeInactive deletes the customer's non-Active reservations and
// returns the number of rows removed.
func (s *BookingStore) PurgeInactive(ctx context.Context, customerID uint64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE customer_id = ? AND status <> ?`,
		customerID, model.ReservationActive)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListForCustomer returns the customer's reservations joined with their
// vehicles, newest first. The stored total is returned as-is; the engine
// recomputes it from the daily rate before the rows reach a client.
func (s *BookingStore) ListForCustomer(ctx context.Context, customerID uint64) ([]booking.ReservationView, error) {
	const q = `SELECT r.id, r.vehicle_id, v.make, v.model,
			DATE_FORMAT(r.start_date, '%Y-%m-%d'), DATE_FORMAT(r.end_date, '%Y-%m-%d'),
			v.daily_rate_cents, r.total_cents, r.status
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.customer_id = ?
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := s.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]booking.ReservationView, 0)
	for rows.Next() {
		var view booking.ReservationView
		if err := rows.Scan(&view.ID, &view.VehicleID, &view.VehicleMake, &view.VehicleModel,
			&view.StartDate, &view.EndDate, &view.DailyRateCents, &view.TotalCents, &view.Status); err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// bookingTx adapts *sql.Tx to booking.Tx.
type bookingTx struct {
	tx *sql.Tx
}

func (t *bookingTx) VehicleByID(ctx context.Context, id uint64) (model.Vehicle, bool, error) {
	var v model.Vehicle
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, make, model, category, transmission, kind, seats, image,
			daily_rate_cents, DATE_FORMAT(last_service, '%Y-%m-%d'),
			DATE_FORMAT(next_service, '%Y-%m-%d'), DATE_FORMAT(last_inspection, '%Y-%m-%d')
		FROM vehicles WHERE id = ? LIMIT 1`, id).
		Scan(&v.ID, &v.Make, &v.Model, &v.Category, &v.Transmission, &v.Kind,
			&v.Seats, &v.Image, &v.DailyRateCents, &v.LastService, &v.NextService, &v.LastInspection)
	if err == sql.ErrNoRows {
		return model.Vehicle{}, false, nil
	}
	if err != nil {
		return model.Vehicle{}, false, err
	}
	return v, true, nil
}

func (t *bookingTx) ActiveDuplicateExists(ctx context.Context, customerID, vehicleID uint64, startDate, endDate string) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx,
		`SELECT 1 FROM reservations
		WHERE customer_id = ? AND vehicle_id = ? AND start_date = ? AND end_date = ? AND status = ?
		LIMIT 1`,
		customerID, vehicleID, startDate, endDate, model.ReservationActive).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *bookingTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	result, err := t.tx.ExecContext(ctx,
		`INSERT INTO reservations (customer_id, vehicle_id, start_date, end_date, total_cents, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		res.CustomerID, res.VehicleID, res.StartDate, res.EndDate, res.TotalCents, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

func (t *bookingTx) ReservationByID(ctx context.Context, reservationID, customerID uint64) (model.Reservation, bool, error) {
	var res model.Reservation
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, customer_id, vehicle_id,
			DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
			total_cents, status, created_at, updated_at
		FROM reservations WHERE id = ? AND customer_id = ? LIMIT 1`,
		reservationID, customerID).
		Scan(&res.ID, &res.CustomerID, &res.VehicleID, &res.StartDate, &res.EndDate,
			&res.TotalCents, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Reservation{}, false, nil
	}
	if err != nil {
		return model.Reservation{}, false, err
	}
	return res, true, nil
}

func (t *bookingTx) UpdateReservationDates(ctx context.Context, reservationID uint64, startDate, endDate string, totalCents int64) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE reservations SET start_date = ?, end_date = ?, total_cents = ? WHERE id = ?`,
		startDate, endDate, totalCents, reservationID)
	return err
}
