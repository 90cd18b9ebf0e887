package booking

import (
	"context"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// Store is the persistence boundary of the engine. WithTx opens one atomic
// unit of work; the engine performs its read-check-write sequences entirely
// inside the callback so the storage engine's isolation closes the race
// window between the duplicate check and the insert.
type Store interface {
	// WithTx runs fn inside a single transaction, committing when fn
	// returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// ListForCustomer returns every reservation of the customer joined
	// with its vehicle, newest first. Totals are recomputed by the engine.
	ListForCustomer(ctx context.Context, customerID uint64) ([]ReservationView, error)

	// CancelReservation marks the customer's reservation Cancelled.
	// Cancelling an already-cancelled or unknown reservation is a no-op.
	CancelReservation(ctx context.Context, reservationID, customerID uint64) error

	// PurgeInactive deletes the customer's non-Active reservations and
	// returns the number of rows removed.
	PurgeInactive(ctx context.Context, customerID uint64) (int64, error)
}

// Tx is the set of reads and writes available inside one transaction. The
// found return values replace sql.ErrNoRows so the engine stays free of
// database/sql.
type Tx interface {
	VehicleByID(ctx context.Context, id uint64) (model.Vehicle, bool, error)
	ActiveDuplicateExists(ctx context.Context, customerID, vehicleID uint64, startDate, endDate string) (bool, error)
	InsertReservation(ctx context.Context, res *model.Reservation) error
	ReservationByID(ctx context.Context, reservationID, customerID uint64) (model.Reservation, bool, error)
	UpdateReservationDates(ctx context.Context, reservationID uint64, startDate, endDate string, totalCents int64) error
}

// PendingStore carries the ephemeral amount a customer still owes between
// the booking step and the payment step. Implementations are session
// scoped and lossy; a lost cell sends the user back into the booking flow.
type PendingStore interface {
	Set(ctx context.Context, customerID uint64, cell PendingCell) error
	Clear(ctx context.Context, customerID uint64) error
}

// PendingCell is the pending-amount value object. DeltaCents is set only
// when an amendment increased the price beyond what was already owed.
type PendingCell struct {
	AmountDueCents int64  `json:"amount_due_cents"`
	DeltaCents     *int64 `json:"delta_cents,omitempty"`
}

// ReservationView is one row of a customer's reservation list. The total
// is recomputed from the current daily rate rather than read from the
// stored column, matching what the payment views display.
type ReservationView struct {
	ID             uint64 `json:"id"`
	VehicleID      uint64 `json:"vehicle_id"`
	VehicleMake    string `json:"vehicle_make"`
	VehicleModel   string `json:"vehicle_model"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DailyRateCents int64  `json:"daily_rate_cents"`
	TotalCents     int64  `json:"total_cents"`
	Status         string `json:"status"`
}
