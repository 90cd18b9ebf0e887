// Package booking implements the reservation engine: pricing, availability
// conflict checks, amendments with price deltas, cancellation and cleanup.
// Every mutating operation runs inside a single database transaction so a
// concurrent duplicate booking or amendment cannot interleave destructively.
package booking

import "errors"

// Sentinel errors returned by the engine. Handlers translate these into
// HTTP status codes; all of them are recoverable at the request boundary.
var (
	// ErrInvalidDateRange is returned when the end date precedes the start
	// date or a date is not a valid YYYY-MM-DD value.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrVehicleNotFound is returned when the referenced vehicle does not
	// exist.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrReservationNotFound is returned when the reservation does not
	// exist or belongs to a different customer.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDuplicateReservation is returned when an Active reservation with
	// the exact same customer, vehicle and date range already exists.
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrReservationNotActive is returned when amending a reservation that
	// has been cancelled. Cancelled is a terminal state.
	ErrReservationNotActive = errors.New("reservation not active")
)
