// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a payment is recorded for a
// reservation. It contains enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	CustomerID    uint64 `json:"customer_id"`
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalCents    int64  `json:"total_cents"`
	PaidAt        string `json:"paid_at"`
}
