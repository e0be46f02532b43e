package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/expense_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/expense_management_app/internal/core/services"
	"github.com/SscSPs/expense_management_app/internal/delivery"
	"github.com/SscSPs/expense_management_app/internal/handlers"
	"github.com/SscSPs/expense_management_app/internal/jobs"
	"github.com/SscSPs/expense_management_app/internal/middleware"
	"github.com/SscSPs/expense_management_app/internal/platform/config"
	"github.com/SscSPs/expense_management_app/internal/repositories/memory"
	"github.com/SscSPs/expense_management_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Expense Management API
// @version 1.0
// @description Expense submission and approval workflow.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	repos := portsrepo.RepositoryProvider{Store: memory.NewStateStore()}
	container := services.NewServiceContainer(cfg, repos, newCredentialChannel(cfg, logger))

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Failed to create login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, loginLimiter, posthogClient)

	scheduler := jobs.NewScheduler(container.Expense, cfg.ReminderSchedule, cfg.ReminderPendingAge, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	select {
	case <-scheduler.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduler did not stop in time")
	}
}

func newCredentialChannel(cfg *config.Config, logger *slog.Logger) delivery.CredentialDeliveryChannel {
	if cfg.CredentialDelivery == config.CredentialDeliverySMTP {
		logger.Info("Delivering new user credentials by email", slog.String("smtp_host", cfg.SMTP.Host))
		return delivery.NewSMTPChannel(cfg.SMTP)
	}
	logger.Warn("Delivering new user credentials as in-app notifications to the adding admin")
	return delivery.NewNotificationChannel()
}
