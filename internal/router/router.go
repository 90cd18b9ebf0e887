package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/car-rental-reservation/internal/config"
	"github.com/iliyamo/car-rental-reservation/internal/handler"
	"github.com/iliyamo/car-rental-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check used by
// load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Unauthenticated
// operations live under /v1/auth, while protected endpoints live under /v1
// behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked and
	// a fresh pair is returned.
	g.POST("/refresh", a.Refresh)
	// Logout with a refresh_token in the body ends that single session and
	// needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Behind the JWT, logout without a body token revokes every session of
	// the customer.
	auth.POST("/logout", a.Logout)
}

// RegisterVehicles registers the fleet browsing endpoints. Both are public
// so guests can browse before registering, and both sit behind the Redis
// response cache since availability only changes on booking boundaries.
func RegisterVehicles(e *echo.Echo, v *handler.VehicleHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/vehicles", v.List, cached)
	e.GET("/v1/vehicles/:id", v.Get, cached)
}

// RegisterReservations registers the booking lifecycle endpoints under the
// authenticated /v1 group.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, p *handler.PaymentHandler, jwtSecret string) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/reservations", r.Create)
	auth.GET("/reservations", r.List)
	// The static path must be registered alongside the parameterised ones;
	// Echo routes /reservations/inactive to the literal match.
	auth.DELETE("/reservations/inactive", r.Purge)
	auth.PATCH("/reservations/:id", r.Amend)
	auth.POST("/reservations/:id/cancel", r.Cancel)

	auth.POST("/reservations/:id/payment", p.Pay)
	auth.GET("/payments/pending", p.PendingAmount)
}
