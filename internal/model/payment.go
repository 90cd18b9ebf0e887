package model

import "time"

// Payment is an append-only record of a payment submission against a
// reservation. Card details are recorded verbatim; this system never
// contacts a payment network.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation the payment settles.
//  CardNumber    – card number as submitted.
//  Cardholder    – name on the card.
//  Expiry        – expiry as submitted (MM/YY).
//  SecurityCode  – card security code as submitted.
//  CreatedAt     – when the payment was recorded.
type Payment struct {
	ID            uint64    // payments.id
	ReservationID uint64    // payments.reservation_id
	CardNumber    string    // payments.card_number
	Cardholder    string    // payments.cardholder
	Expiry        string    // payments.expiry
	SecurityCode  string    // payments.security_code
	CreatedAt     time.Time // payments.created_at
}
