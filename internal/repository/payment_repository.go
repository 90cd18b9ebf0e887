package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// PaymentRepo appends payment records. Rows are never updated or deleted;
// the ledger is append-only and card details are recorded verbatim since
// no payment network is ever contacted.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// ReservationForCustomer loads the reservation a payment is submitted
// against, scoped to the paying customer. sql.ErrNoRows is returned when
// it does not exist or belongs to someone else.
func (r *PaymentRepo) ReservationForCustomer(ctx context.Context, reservationID, customerID uint64) (model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, customer_id, vehicle_id,
			DATE_FORMAT(start_date, '%Y-%m-%d'), DATE_FORMAT(end_date, '%Y-%m-%d'),
			total_cents, status, created_at, updated_at
		FROM reservations WHERE id = ? AND customer_id = ? LIMIT 1`,
		reservationID, customerID).
		Scan(&res.ID, &res.CustomerID, &res.VehicleID, &res.StartDate, &res.EndDate,
			&res.TotalCents, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

// Create inserts a payment row and populates the generated ID.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (reservation_id, card_number, cardholder, expiry, security_code)
		VALUES (?, ?, ?, ?, ?)`,
		p.ReservationID, p.CardNumber, p.Cardholder, p.Expiry, p.SecurityCode)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}
