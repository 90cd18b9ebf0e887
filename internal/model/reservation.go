package model

import "time"

// Reservation status values. A reservation starts Active and may
// transition to Cancelled; Cancelled is terminal.
const (
	ReservationActive    = "Active"
	ReservationCancelled = "Cancelled"
)

// Reservation records a customer's booking of one vehicle for an
// inclusive date range. Dates are stored as DATE columns and handled
// as YYYY-MM-DD strings throughout; the total is integer cents.
//
// Fields:
//  ID         – primary key identifier.
//  CustomerID – customer who made the reservation.
//  VehicleID  – vehicle being reserved.
//  StartDate  – first rental day (inclusive).
//  EndDate    – last rental day (inclusive, >= StartDate).
//  TotalCents – total price in cents for the whole range.
//  Status     – Active or Cancelled.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	CustomerID uint64    // reservations.customer_id
	VehicleID  uint64    // reservations.vehicle_id
	StartDate  string    // reservations.start_date (DATE)
	EndDate    string    // reservations.end_date (DATE)
	TotalCents int64     // reservations.total_cents
	Status     string    // reservations.status
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}
