package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/repository"
)

// VehicleHandler serves the rentable fleet: filtered browsing that hides
// currently booked vehicles, and single-vehicle details for the booking
// form.
type VehicleHandler struct {
	Vehicles *repository.VehicleRepo
}

func NewVehicleHandler(v *repository.VehicleRepo) *VehicleHandler {
	if v == nil {
		panic("nil repository passed to NewVehicleHandler")
	}
	return &VehicleHandler{Vehicles: v}
}

// vehicleResp mirrors a catalog row for clients. The daily rate is exact
// in cents with a derived float for display.
type vehicleResp struct {
	ID             uint64  `json:"id"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Category       string  `json:"category"`
	Transmission   string  `json:"transmission"`
	Kind           string  `json:"kind"`
	Seats          uint32  `json:"seats"`
	Image          string  `json:"image"`
	DailyRateCents int64   `json:"daily_rate_cents"`
	DailyRate      float64 `json:"daily_rate"`
	LastService    string  `json:"last_service"`
	NextService    string  `json:"next_service"`
	LastInspection string  `json:"last_inspection"`
}

func toVehicleResp(v model.Vehicle) vehicleResp {
	return vehicleResp{
		ID:             v.ID,
		Make:           v.Make,
		Model:          v.Model,
		Category:       v.Category,
		Transmission:   v.Transmission,
		Kind:           v.Kind,
		Seats:          v.Seats,
		Image:          v.Image,
		DailyRateCents: v.DailyRateCents,
		DailyRate:      cents(v.DailyRateCents),
		LastService:    v.LastService,
		NextService:    v.NextService,
		LastInspection: v.LastInspection,
	}
}

// List handles GET /v1/vehicles?search=. An empty search returns the
// whole available fleet; vehicles with a current or upcoming Active
// reservation are excluded either way. An empty result is a valid answer.
func (h *VehicleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vehicles, err := h.Vehicles.Search(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	out := make([]vehicleResp, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResp(v))
	}
	return c.JSON(http.StatusOK, echo.Map{"vehicles": out})
}

// Get handles GET /v1/vehicles/:id.
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vehicle id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vehicles.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "vehicle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toVehicleResp(v))
}
