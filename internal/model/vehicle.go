package model

// Vehicle describes a rentable vehicle in the fleet. The catalog is
// seeded once at startup when the table is empty and is otherwise
// read-only; maintenance dates are informational. Daily rates are
// stored in integer cents to avoid floating-point drift.
//
// Fields:
//  ID             – primary key identifier.
//  Make           – manufacturer (e.g. Toyota).
//  Model          – model name (e.g. Yaris).
//  Category       – size/class bucket (Small, Medium, SUV, Luxury, Large).
//  Transmission   – Manual or Automatic.
//  Kind           – Car or Motorcycle.
//  Seats          – seating capacity.
//  Image          – image file reference for the presentation layer.
//  DailyRateCents – rental price per day in cents.
//  LastService    – date of last service (YYYY-MM-DD).
//  NextService    – date of next scheduled service (YYYY-MM-DD).
//  LastInspection – date of last inspection (YYYY-MM-DD).
type Vehicle struct {
	ID             uint64 // vehicles.id
	Make           string // vehicles.make
	Model          string // vehicles.model
	Category       string // vehicles.category
	Transmission   string // vehicles.transmission
	Kind           string // vehicles.kind
	Seats          uint32 // vehicles.seats
	Image          string // vehicles.image
	DailyRateCents int64  // vehicles.daily_rate_cents
	LastService    string // vehicles.last_service (DATE)
	NextService    string // vehicles.next_service (DATE)
	LastInspection string // vehicles.last_inspection (DATE)
}
