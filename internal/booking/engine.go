package booking

import (
	"context"
	"log"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// Engine creates, prices, amends and cancels reservations. It owns the
// pricing rules and writes the pending-amount cell as a side effect of
// create and amend; the payment handler clears it.
type Engine struct {
	store   Store
	pending PendingStore
}

// NewEngine returns an Engine bound to the given store and pending store.
func NewEngine(store Store, pending PendingStore) *Engine {
	if store == nil || pending == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{store: store, pending: pending}
}

// Create books a vehicle for an inclusive date range. It validates the
// range, rejects unknown vehicles and exact-tuple Active duplicates, and
// prices the booking at RentalDays × the vehicle's daily rate. The whole
// check-then-insert sequence runs in one transaction. On success the
// customer's pending amount is set to the total.
func (e *Engine) Create(ctx context.Context, customerID, vehicleID uint64, startDate, endDate string) (model.Reservation, error) {
	days, err := rentalDaysStr(startDate, endDate)
	if err != nil {
		return model.Reservation{}, err
	}

	res := model.Reservation{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     model.ReservationActive,
	}
	err = e.store.WithTx(ctx, func(tx Tx) error {
		vehicle, found, err := tx.VehicleByID(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !found {
			return ErrVehicleNotFound
		}
		dup, err := tx.ActiveDuplicateExists(ctx, customerID, vehicleID, startDate, endDate)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateReservation
		}
		res.TotalCents = days * vehicle.DailyRateCents
		return tx.InsertReservation(ctx, &res)
	})
	if err != nil {
		return model.Reservation{}, err
	}

	e.setPending(ctx, customerID, PendingCell{AmountDueCents: res.TotalCents})
	return res, nil
}

// Amend moves an Active reservation to a new date range and reprices it
// against the vehicle's current daily rate. The price difference against
// the prior total is returned; when positive it is carried in the pending
// cell as the amount still owed beyond what was already paid.
func (e *Engine) Amend(ctx context.Context, reservationID, customerID uint64, newStart, newEnd string) (model.Reservation, int64, error) {
	days, err := rentalDaysStr(newStart, newEnd)
	if err != nil {
		return model.Reservation{}, 0, err
	}

	var (
		res   model.Reservation
		delta int64
	)
	err = e.store.WithTx(ctx, func(tx Tx) error {
		var found bool
		res, found, err = tx.ReservationByID(ctx, reservationID, customerID)
		if err != nil {
			return err
		}
		if !found {
			return ErrReservationNotFound
		}
		if res.Status != model.ReservationActive {
			return ErrReservationNotActive
		}
		// Defensive: the vehicle row could have been removed since booking.
		vehicle, found, err := tx.VehicleByID(ctx, res.VehicleID)
		if err != nil {
			return err
		}
		if !found {
			return ErrVehicleNotFound
		}
		newTotal := days * vehicle.DailyRateCents
		delta = newTotal - res.TotalCents
		if err := tx.UpdateReservationDates(ctx, reservationID, newStart, newEnd, newTotal); err != nil {
			return err
		}
		res.StartDate = newStart
		res.EndDate = newEnd
		res.TotalCents = newTotal
		return nil
	})
	if err != nil {
		return model.Reservation{}, 0, err
	}

	cell := PendingCell{AmountDueCents: res.TotalCents}
	if delta > 0 {
		d := delta
		cell.DeltaCents = &d
	}
	e.setPending(ctx, customerID, cell)
	return res, delta, nil
}

// Cancel marks the reservation Cancelled. Cancelling twice is not an
// error; the second call leaves the row unchanged.
func (e *Engine) Cancel(ctx context.Context, reservationID, customerID uint64) error {
	return e.store.CancelReservation(ctx, reservationID, customerID)
}

// PurgeInactive deletes every non-Active reservation of the customer and
// returns how many rows were removed.
func (e *Engine) PurgeInactive(ctx context.Context, customerID uint64) (int64, error) {
	return e.store.PurgeInactive(ctx, customerID)
}

// ListForCustomer returns the customer's reservations with per-row totals
// recomputed from the current daily rate, so the list stays consistent
// with what a new booking at today's rate would cost.
func (e *Engine) ListForCustomer(ctx context.Context, customerID uint64) ([]ReservationView, error) {
	views, err := e.store.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range views {
		days, err := rentalDaysStr(views[i].StartDate, views[i].EndDate)
		if err != nil {
			continue // keep the stored total for malformed legacy rows
		}
		views[i].TotalCents = days * views[i].DailyRateCents
	}
	return views, nil
}

// setPending writes the pending cell best-effort. The cell is ephemeral
// UX state; losing it sends the user back into the booking flow rather
// than failing a booking that already committed.
func (e *Engine) setPending(ctx context.Context, customerID uint64, cell PendingCell) {
	if err := e.pending.Set(ctx, customerID, cell); err != nil {
		log.Printf("booking: set pending amount for customer %d failed: %v", customerID, err)
	}
}
