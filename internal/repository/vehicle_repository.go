package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// VehicleRepo provides read access to the vehicle catalog plus the
// one-time seed used to populate an empty fleet.
type VehicleRepo struct {
	db *sql.DB
}

// NewVehicleRepo returns a VehicleRepo bound to the given database.
func NewVehicleRepo(db *sql.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = `id, make, model, category, transmission, kind, seats, image,
	daily_rate_cents, DATE_FORMAT(last_service, '%Y-%m-%d'),
	DATE_FORMAT(next_service, '%Y-%m-%d'), DATE_FORMAT(last_inspection, '%Y-%m-%d')`

func scanVehicle(row interface{ Scan(...any) error }, v *model.Vehicle) error {
	return row.Scan(&v.ID, &v.Make, &v.Model, &v.Category, &v.Transmission, &v.Kind,
		&v.Seats, &v.Image, &v.DailyRateCents, &v.LastService, &v.NextService, &v.LastInspection)
}

// Search returns vehicles matching the filter text, excluding any vehicle
// that is currently or upcoming booked (an Active reservation whose end
// date is today or later). An empty filter returns the whole available
// fleet. Matching is a case-insensitive substring match over make, model
// and category.
func (r *VehicleRepo) Search(ctx context.Context, filter string) ([]model.Vehicle, error) {
	where := []string{`NOT EXISTS (
		SELECT 1 FROM reservations res
		WHERE res.vehicle_id = v.id
		  AND res.status = 'Active'
		  AND res.end_date >= CURDATE())`}
	args := []any{}

	if f := strings.TrimSpace(filter); f != "" {
		like := "%" + strings.ToLower(f) + "%"
		where = append(where, "(LOWER(v.make) LIKE ? OR LOWER(v.model) LIKE ? OR LOWER(v.category) LIKE ?)")
		args = append(args, like, like, like)
	}

	query := `SELECT v.id, v.make, v.model, v.category, v.transmission, v.kind, v.seats, v.image,
			v.daily_rate_cents,
			DATE_FORMAT(v.last_service, '%Y-%m-%d'),
			DATE_FORMAT(v.next_service, '%Y-%m-%d'),
			DATE_FORMAT(v.last_inspection, '%Y-%m-%d')
		FROM vehicles v
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY v.make, v.model`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Vehicle, 0)
	for rows.Next() {
		var v model.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single vehicle. sql.ErrNoRows is returned untouched;
// callers map it to their own not-found kind.
func (r *VehicleRepo) GetByID(ctx context.Context, id uint64) (model.Vehicle, error) {
	var v model.Vehicle
	err := scanVehicle(r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? LIMIT 1`, id), &v)
	return v, err
}

// Count returns the number of vehicles in the catalog.
func (r *VehicleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, err
}

// SeedIfEmpty inserts the given catalog in one statement, but only when
// the table holds no vehicles. Calling it against a populated catalog has
// no effect, so it is safe on every startup.
func (r *VehicleRepo) SeedIfEmpty(ctx context.Context, seeds []model.Vehicle) error {
	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 || len(seeds) == 0 {
		return nil
	}
	query := `INSERT INTO vehicles (make, model, category, transmission, kind, seats, image,
		daily_rate_cents, last_service, next_service, last_inspection) VALUES `
	args := make([]any, 0, len(seeds)*11)
	for i, s := range seeds {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, s.Make, s.Model, s.Category, s.Transmission, s.Kind, s.Seats,
			s.Image, s.DailyRateCents, s.LastService, s.NextService, s.LastInspection)
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// DefaultCatalog is the fixed fleet inserted into an empty database.
func DefaultCatalog() []model.Vehicle {
	return []model.Vehicle{
		{Make: "Toyota", Model: "Yaris", Category: "Small", Transmission: "Manual", Kind: "Car", Seats: 4, Image: "yaris.jpg", DailyRateCents: 3000, LastService: "2024-01-10", NextService: "2025-01-10", LastInspection: "2024-02-10"},
		{Make: "Honda", Model: "Civic", Category: "Medium", Transmission: "Automatic", Kind: "Car", Seats: 5, Image: "civic.jpg", DailyRateCents: 4500, LastService: "2024-01-05", NextService: "2025-01-05", LastInspection: "2024-02-01"},
		{Make: "BMW", Model: "X5", Category: "SUV", Transmission: "Automatic", Kind: "Car", Seats: 5, Image: "bmw_x5.jpg", DailyRateCents: 12000, LastService: "2023-08-01", NextService: "2024-08-01", LastInspection: "2023-09-01"},
		{Make: "Audi", Model: "A8", Category: "Luxury", Transmission: "Automatic", Kind: "Car", Seats: 5, Image: "audi_a8.jpg", DailyRateCents: 16000, LastService: "2024-01-15", NextService: "2025-01-15", LastInspection: "2024-01-20"},
		{Make: "Fiat", Model: "500", Category: "Small", Transmission: "Manual", Kind: "Car", Seats: 4, Image: "fiat_500.jpg", DailyRateCents: 2800, LastService: "2024-02-01", NextService: "2025-02-01", LastInspection: "2024-02-10"},
		{Make: "Kawasaki", Model: "Ninja 400", Category: "Medium", Transmission: "Manual", Kind: "Motorcycle", Seats: 2, Image: "ninja_400.jpg", DailyRateCents: 4000, LastService: "2024-03-01", NextService: "2025-03-01", LastInspection: "2024-03-10"},
		{Make: "Yamaha", Model: "TMAX", Category: "Large", Transmission: "Automatic", Kind: "Motorcycle", Seats: 2, Image: "tmax.jpg", DailyRateCents: 5000, LastService: "2024-01-20", NextService: "2025-01-20", LastInspection: "2024-02-01"},
	}
}
