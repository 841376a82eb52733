package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentivo-backend/internal/api/http"
	"rentivo-backend/internal/config"
	"rentivo-backend/internal/gateway"
	"rentivo-backend/internal/jobs"
	"rentivo-backend/internal/logger"
	"rentivo-backend/internal/notify"
	"rentivo-backend/internal/repository/postgres"
	"rentivo-backend/internal/scheduler"
	"rentivo-backend/internal/security"
	"rentivo-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentivo Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Payment Gateway
	gw := gateway.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.TimeoutSeconds)

	// Initialize Notification Channels
	var emailChannel, smsChannel, pushChannel notify.Channel
	if cfg.SendGrid.APIKey != "" {
		emailChannel = notify.NewEmailChannel(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
		logger.Info("Email channel enabled", "from", cfg.SendGrid.FromEmail)
	}
	if cfg.Twilio.AccountSID != "" {
		smsChannel = notify.NewSMSChannel(
			cfg.Twilio.AccountSID,
			cfg.Twilio.AuthToken,
			cfg.Twilio.FromNumber,
			time.Duration(cfg.Notify.SendTimeoutSeconds)*time.Second,
		)
		logger.Info("SMS channel enabled", "from", cfg.Twilio.FromNumber)
	}
	if cfg.Firebase.CredentialsFile != "" {
		pushChannel, err = notify.NewPushChannel(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize push channel", "error", err)
			log.Fatalf("Failed to initialize push channel: %v", err)
		}
		logger.Info("Push channel enabled")
	}

	dispatcher, err := notify.NewDispatcher(cfg.Notify.PoolSize, time.Duration(cfg.Notify.SendTimeoutSeconds)*time.Second)
	if err != nil {
		logger.Error("Failed to initialize notification dispatcher", "error", err)
		log.Fatalf("Failed to initialize notification dispatcher: %v", err)
	}
	defer dispatcher.Shutdown()

	notifier := notify.NewNotifier(
		dispatcher,
		emailChannel,
		smsChannel,
		pushChannel,
		store.DeviceRepository,
		store.NotificationRepository,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.ItemRepository)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.ItemRepository,
		store.UserRepository,
		gw,
		notifier,
		cfg.Razorpay.Currency,
	)
	issueSvc := service.NewIssueService(
		store.IssueRepository,
		store.BookingRepository,
		store.ItemRepository,
		store.UserRepository,
		notifier,
	)
	noteSvc := service.NewNotificationService(store.DeviceRepository, store.NotificationRepository)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	bookingHandler := httpapi.NewBookingHandler(bookingSvc)
	paymentHandler := httpapi.NewPaymentHandler(paymentSvc)
	issueHandler := httpapi.NewIssueHandler(issueSvc)
	notificationHandler := httpapi.NewNotificationHandler(noteSvc)

	router := httpapi.NewRouter(
		tokenManager,
		authHandler,
		bookingHandler,
		paymentHandler,
		issueHandler,
		notificationHandler,
	)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(
		store.BookingRepository,
		store.ItemRepository,
		store.UserRepository,
		notifier,
		cfg,
	)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
