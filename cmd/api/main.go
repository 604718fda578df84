package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	// Application Layer
	appService "ummatcal/internal/application/service"

	// Infrastructure Layer
	"ummatcal/internal/infrastructure/database/bolt"
	lineClient "ummatcal/internal/infrastructure/line"
	"ummatcal/internal/infrastructure/notification"

	// Interfaces Layer
	"ummatcal/internal/interfaces/api/handler"
	"ummatcal/internal/interfaces/api/router"

	// Packages
	appLogger "ummatcal/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, responseRouter *appService.ResponseRouter, gw *notification.Gateway, store *bolt.Store, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop accepting notification responses, then the gateway itself
	log.Println("Stopping response router and notification gateway...")
	responseRouter.Shutdown()
	gw.Shutdown()

	// Close the store
	if err := store.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database closed.")
	}

	// Shutdown HTTP server with a bounded grace period
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // Default port
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	store, err := bolt.Open("", appLog)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	reminderRepo := bolt.NewReminderRepository(store, appLog)
	settingsRepo := bolt.NewSettingsRepository(store)
	appLog.Info("Database and repositories initialized.")

	line := lineClient.NewClient(appLog)
	gw := notification.NewGateway(line, appLog)

	// --- Application Services ---
	reminderSvc := appService.NewReminderService(reminderRepo, gw, appLog)
	dailySvc := appService.NewDailyDigestService(settingsRepo, gw, appService.DateTextFunc(func(day time.Time) string {
		return day.Format("Monday, 2 January 2006")
	}), appLog)
	responseRouter := appService.NewResponseRouter(gw, reminderSvc, appLog)
	responseRouter.Start()
	appLog.Info("Application services initialized.")

	// --- Startup reconciliation ---
	// Must finish before user-initiated operations are accepted; the
	// service gates them until Initialize returns.
	appLog.Info("Reconciling scheduled triggers...")
	if err := reminderSvc.Initialize(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Startup reconciliation failed", err)
	} else {
		appLog.Info("Startup reconciliation complete.")
	}
	if err := dailySvc.Refresh(context.Background()); err != nil {
		appLog.Error("Failed to refresh daily digest schedule on startup", err)
	}

	// --- API Handlers ---
	reminderHandler := handler.NewReminderHandler(reminderSvc, appLog)
	settingsHandler := handler.NewSettingsHandler(dailySvc, appLog)
	lineHandler := handler.NewLineHandler(line, gw, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		ReminderHandler: reminderHandler,
		SettingsHandler: settingsHandler,
		LineHandler:     lineHandler,
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, responseRouter, gw, store, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
