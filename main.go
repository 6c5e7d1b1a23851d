// File: digibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"digibook/config"
	"digibook/cron"
	"digibook/database"
	bookingRepo "digibook/database/repository/booking"
	draftRepo "digibook/database/repository/draft"
	"digibook/handlers"
	"digibook/metrics"
	"digibook/routes"
	"digibook/services/booking"
	"digibook/services/notification"
	"digibook/services/payment"
	"digibook/services/wizard"
	"digibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func newGateway(logger *zap.Logger) payment.Gateway {
	cfg := config.AppConfig
	switch strings.ToLower(cfg.PaymentGateway) {
	case "dodo":
		webhookURL := strings.TrimRight(cfg.PublicURL, "/") + "/api/payments/webhook"
		return payment.NewDodoGateway(cfg.DodoAPIKey, cfg.DodoAPIURL, cfg.DodoWebhookSecret, webhookURL)
	default:
		if cfg.StripeSecretKey == "" {
			logger.Warn("STRIPE_SECRET_KEY is empty; checkout creation will fail until it is set")
		}
		return payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, nil)
	}
}

func newNotificationService(logger *zap.Logger) notification.NotificationService {
	cfg := config.AppConfig
	var sender notification.EmailSender = notification.NewStubEmailSender(logger)
	if sg := notification.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, "", logger); sg != nil {
		sender = sg
	}
	svc, err := notification.NewDefaultNotificationService(sender, cfg.StudioEmail, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	return svc
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	draftClient := utils.GetDraftClient()
	queueClient := utils.GetQueueClient()

	bookingMetrics := metrics.NewBookingMetrics(nil)

	// repositories.
	drafts := draftRepo.NewRedisDraftRepo(draftClient, config.DraftTTL())
	bookings := bookingRepo.NewMongoBookingRepo()

	// file storage is optional in development; uploads then carry no URL.
	var uploader wizard.Uploader
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("File storage disabled", zap.Error(err))
	} else {
		uploader = cld
	}

	// handoff queue and worker.
	queue := asynq.NewClient(cron.QueueRedisOpt())
	worker := cron.InitHandoffWorker(newNotificationService(logger))

	// services.
	paymentService := &payment.DefaultPaymentService{
		Repo:      bookings,
		Gateway:   newGateway(logger),
		PublicURL: config.AppConfig.PublicURL,
		Currency:  config.AppConfig.Currency,
		Metrics:   bookingMetrics,
		Logger:    logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:           bookings,
		Queue:          queue,
		WhatsAppNumber: config.AppConfig.WhatsAppNumber,
		Currency:       config.AppConfig.Currency,
		Metrics:        bookingMetrics,
		Logger:         logger,
	}
	sessions := wizard.NewSessionManager(drafts, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Wizard:   handlers.NewWizardHandler(sessions, uploader, paymentService, bookingService, config.MaxUploadBytes()),
		Payment:  handlers.NewPaymentHandler(paymentService),
		Services: &handlers.ServicesHandler{BookingSvc: bookingService},
		Admin:    handlers.NewAdminHandler(bookingService),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = config.MaxUploadBytes()

	routes.RegisterRoutes(router, handlerBundle, logger)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go utils.StartHealthMonitor(monitorCtx, map[string]*redis.Client{
		"drafts": draftClient,
		"queue":  queueClient,
	}, database.MongoClient)

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

	stopMonitor()
	worker.Shutdown()
	if err := queue.Close(); err != nil {
		logger.Warn("main: failed to close task queue client", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
