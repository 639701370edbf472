// File: agendo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendo/config"
	"agendo/cron"
	"agendo/database"
	appointmentRepo "agendo/database/repository/appointment"
	businessRepo "agendo/database/repository/business"
	holdRepo "agendo/database/repository/hold"
	"agendo/handlers"
	"agendo/middleware"
	"agendo/routes"
	"agendo/services/reminder"
	"agendo/services/scheduling"
	"agendo/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldCache()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bizRepo := businessRepo.NewMongoBusinessRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	holdStore := holdRepo.NewRedisHoldRepo()

	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}

	// services.
	reminderScheduler := reminder.NewAsynqScheduler()
	schedulingService := &scheduling.DefaultSchedulingService{
		BusinessRepo:    bizRepo,
		AppointmentRepo: apptRepo,
		HoldRepo:        holdStore,
		Reminders:       reminderScheduler,
		HoldTTL:         time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
	}

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)

	// Register routes.
	routes.RegisterRoutes(router, schedulingHandler)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker()
	utils.StartHealthMonitor(database.MongoClient, utils.GetHoldCacheClient(), utils.GetCacheClient())

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
