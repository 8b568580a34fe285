package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/piresc/nebengtrip/internal/pkg/config"
	"github.com/piresc/nebengtrip/internal/pkg/database"
	"github.com/piresc/nebengtrip/internal/pkg/logger"
	"github.com/piresc/nebengtrip/internal/pkg/middleware"
	"github.com/piresc/nebengtrip/internal/pkg/nsq"
	"github.com/piresc/nebengtrip/internal/pkg/triplock"

	bookingsGateway "github.com/piresc/nebengtrip/services/bookings/gateway"
	bookingsHandler "github.com/piresc/nebengtrip/services/bookings/handler"
	bookingsRepository "github.com/piresc/nebengtrip/services/bookings/repository"
	bookingsUsecase "github.com/piresc/nebengtrip/services/bookings/usecase"
	paymentsGateway "github.com/piresc/nebengtrip/services/payments/gateway"
	paymentsHandler "github.com/piresc/nebengtrip/services/payments/handler"
	paymentsRepository "github.com/piresc/nebengtrip/services/payments/repository"
	paymentsUsecase "github.com/piresc/nebengtrip/services/payments/usecase"
	reviewsHandler "github.com/piresc/nebengtrip/services/reviews/handler"
	reviewsRepository "github.com/piresc/nebengtrip/services/reviews/repository"
	reviewsUsecase "github.com/piresc/nebengtrip/services/reviews/usecase"
	tripsGateway "github.com/piresc/nebengtrip/services/trips/gateway"
	tripsHandler "github.com/piresc/nebengtrip/services/trips/handler"
	tripsRepository "github.com/piresc/nebengtrip/services/trips/repository"
	tripsUsecase "github.com/piresc/nebengtrip/services/trips/usecase"
	usersHandler "github.com/piresc/nebengtrip/services/users/handler"
	usersRepository "github.com/piresc/nebengtrip/services/users/repository"
	usersUsecase "github.com/piresc/nebengtrip/services/users/usecase"
)

func main() {
	appName := "marketplace"
	configPath := os.Getenv("CONFIG_PATH")
	configs := config.InitConfig(configPath)

	appLogger, err := logger.NewAppLogger(configs.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Close()
	logger.SetGlobalLogger(appLogger)

	logger.WithFields(logrus.Fields{
		"app":         appName,
		"version":     configs.App.Version,
		"environment": configs.App.Environment,
	}).Info("Starting application")

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer postgresClient.Close()
	db := postgresClient.GetDB()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize NSQ producer. Optional: with NSQ disabled the gateways
	// skip publishing.
	var producer *nsq.Producer
	if configs.NSQ.Enabled {
		producer, err = nsq.NewProducer(configs.NSQ.Address)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to NSQ")
		}
		defer producer.Stop()
	}

	// Per-trip lock registry shared by trip and booking usecases so that
	// seat accounting and lifecycle changes on one trip serialize.
	locks := triplock.NewRegistry()

	// Repositories
	userRepo := usersRepository.NewUserRepository(db)
	sessionRepo := usersRepository.NewSessionRepository(redisClient)
	tripRepo := tripsRepository.NewTripRepository(db)
	bookingRepo := bookingsRepository.NewBookingRepository(db)
	paymentRepo := paymentsRepository.NewPaymentRepository(db)
	reviewRepo := reviewsRepository.NewReviewRepository(db)

	// Gateways
	tripGW := tripsGateway.NewTripGW(producer)
	bookingGW := bookingsGateway.NewBookingGW(producer)
	paymentGW := paymentsGateway.NewPaymentGW(producer)

	// Usecases
	userUC := usersUsecase.NewUserUC(configs, userRepo, sessionRepo)
	tripUC := tripsUsecase.NewTripUC(tripRepo, tripGW, locks)
	bookingUC := bookingsUsecase.NewBookingUC(bookingRepo, tripRepo, bookingGW, locks)
	paymentUC := paymentsUsecase.NewPaymentUC(paymentRepo, bookingRepo, tripRepo, paymentGW)
	reviewUC := reviewsUsecase.NewReviewUC(reviewRepo)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(appLogger))

	auth := middleware.AuthMiddleware(configs, sessionRepo)

	e.GET("/health", func(c echo.Context) error {
		status := map[string]string{"status": "ok", "app": appName}
		if err := db.PingContext(c.Request().Context()); err != nil {
			status["status"] = "degraded"
			status["postgres"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		return c.JSON(http.StatusOK, status)
	})

	// Register service routes
	usersHandler.NewHandler(userUC).RegisterRoutes(e, auth)
	tripsHandler.NewHandler(tripUC).RegisterRoutes(e, auth)
	bookingsHandler.NewHandler(bookingUC).RegisterRoutes(e, auth)
	paymentsHandler.NewHandler(paymentUC).RegisterRoutes(e, auth)
	reviewsHandler.NewHandler(reviewUC).RegisterRoutes(e, auth)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
		appLogger.WithField("address", addr).Info("Starting HTTP server")

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	appLogger.WithField("signal", sig.String()).Info("Received shutdown signal")

	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exiting gracefully")
}
