package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/MKuranov/car_market/internal/config"
	"github.com/MKuranov/car_market/internal/es"
	"github.com/MKuranov/car_market/internal/handlers"
	"github.com/MKuranov/car_market/internal/logging"
	authmw "github.com/MKuranov/car_market/internal/middleware/auth"
	"github.com/MKuranov/car_market/internal/models"
	"github.com/MKuranov/car_market/internal/mykafka"
	"github.com/MKuranov/car_market/internal/service"
	httpserver "github.com/MKuranov/car_market/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(logging.New(configuration.LOG_LEVEL))

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchClient *handlers.SearchHandler
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchClient = &handlers.SearchHandler{ES: client, Index: "posts"}
	} else {
		searchClient = &handlers.SearchHandler{Index: "posts"}
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	users := service.NewUserService(db)

	postHandler := &handlers.PostHandler{
		Posts:         service.NewPostService(db),
		Cars:          service.NewCarService(db),
		Photos:        service.NewPostPhotoService(db),
		Brands:        service.NewReferenceService[models.Brand](db),
		Models:        service.NewReferenceService[models.CarModel](db),
		Categories:    service.NewReferenceService[models.Category](db),
		Bodies:        service.NewReferenceService[models.Body](db),
		Engines:       service.NewReferenceService[models.Engine](db),
		Transmissions: service.NewReferenceService[models.TransmissionType](db),
		Drives:        service.NewReferenceService[models.DriveType](db),
		Colors:        service.NewReferenceService[models.CarColor](db),
		Fuels:         service.NewReferenceService[models.FuelType](db),
		WheelSides:    service.NewReferenceService[models.WheelSide](db),
		Producer:      prod,
		ES:            searchClient.ES,
		ESIndex:       searchClient.Index,
		UploadDir:     configuration.UPLOAD_DIR,
	}

	deps := &httpserver.Deps{
		PostHandler:   postHandler,
		AuthHandler:   &handlers.AuthHandler{Users: users, JWTSecret: jwtSecret, Producer: prod},
		SearchHandler: searchClient,
		Session:       &authmw.SessionMiddleware{Users: users, JWTSecret: jwtSecret},
		Reference: &httpserver.ReferenceHandlers{
			Brands:        handlers.NewReferenceHTTP[models.Brand, *models.Brand](postHandler.Brands, "brand"),
			Models:        handlers.NewReferenceHTTP[models.CarModel, *models.CarModel](postHandler.Models, "car_model"),
			Categories:    handlers.NewReferenceHTTP[models.Category, *models.Category](postHandler.Categories, "category"),
			Bodies:        handlers.NewReferenceHTTP[models.Body, *models.Body](postHandler.Bodies, "body"),
			Engines:       handlers.NewReferenceHTTP[models.Engine, *models.Engine](postHandler.Engines, "engine"),
			Transmissions: handlers.NewReferenceHTTP[models.TransmissionType, *models.TransmissionType](postHandler.Transmissions, "transmission_type"),
			Drives:        handlers.NewReferenceHTTP[models.DriveType, *models.DriveType](postHandler.Drives, "drive_type"),
			Colors:        handlers.NewReferenceHTTP[models.CarColor, *models.CarColor](postHandler.Colors, "car_color"),
			Fuels:         handlers.NewReferenceHTTP[models.FuelType, *models.FuelType](postHandler.Fuels, "fuel_type"),
			WheelSides:    handlers.NewReferenceHTTP[models.WheelSide, *models.WheelSide](postHandler.WheelSides, "wheel_side"),
		},
		UploadDir: configuration.UPLOAD_DIR,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := slog.Default().With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))
			return next(c)
		}
	})

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
