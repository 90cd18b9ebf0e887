package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/car-rental-reservation/internal/booking"
	"github.com/iliyamo/car-rental-reservation/internal/config"
	"github.com/iliyamo/car-rental-reservation/internal/database"
	"github.com/iliyamo/car-rental-reservation/internal/handler"
	"github.com/iliyamo/car-rental-reservation/internal/middleware"
	"github.com/iliyamo/car-rental-reservation/internal/pending"
	"github.com/iliyamo/car-rental-reservation/internal/queue"
	"github.com/iliyamo/car-rental-reservation/internal/repository"
	"github.com/iliyamo/car-rental-reservation/internal/router"
)

func main() {
	// A .env is optional; real deployments inject environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	vehicles := repository.NewVehicleRepo(db)
	if err := vehicles.SeedIfEmpty(ctx, repository.DefaultCatalog()); err != nil {
		log.Fatalf("seed vehicles: %v", err)
	}

	// Redis is optional: without it the response cache and rate limiter
	// pass through and the pending store falls back to process memory.
	rdb := config.NewRedisClient()

	customers := repository.NewCustomerRepo(db)
	tokens := repository.NewTokenRepo(db)
	payments := repository.NewPaymentRepo(db)

	pendingStore := pending.New(rdb, time.Duration(cfg.PendingTTLMin)*time.Minute)
	engine := booking.NewEngine(repository.NewBookingStore(db), pendingStore)

	authH := handler.NewAuthHandler(cfg, customers, tokens)
	vehicleH := handler.NewVehicleHandler(vehicles)
	reservationH := handler.NewReservationHandler(engine)
	paymentH := handler.NewPaymentHandler(payments, vehicles, pendingStore)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterVehicles(e, vehicleH, config.LoadCacheConfig(), rdb)
	router.RegisterReservations(e, reservationH, paymentH, cfg.JWTSecret)

	// The confirmation consumer reconnects on its own; a missing broker
	// only disables the booking log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("rabbitmq consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
