package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAvailabilityRuleHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_availability_rule"
	createBlockedDateHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_blocked_date"
	createBookingHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_booking"
	createPaymentIntentHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_payment_intent"
	deleteAvailabilityRuleHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/delete_availability_rule"
	deleteBlockedDateHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/delete_blocked_date"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_balance"
	getBookingHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_booking"
	getMentorFeedbackHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_mentor_feedback"
	getMentorRatingsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_mentor_ratings"
	getMyAvailabilityRulesHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_my_availability_rules"
	getMyBlockedDatesHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_my_blocked_dates"
	getMyBookingsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_my_bookings"
	getMyFeedbackHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_my_feedback"
	getPaymentHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_payment"
	getPaymentHistoryHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_payment_history"
	paymentWebhookHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/payment_webhook"
	recordConsentHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/record_consent"
	releasePayoutHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/release_payout"
	submitFeedbackHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/submit_feedback"
	submitSummaryHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/submit_summary"
	updateAvailabilityRuleHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/update_availability_rule"
	updateBookingStatusHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/config"
	"github.com/m04kA/SMC-MentorshipService/internal/infra/migrations"
	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	balanceRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/balance"
	blockedDateRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/booking"
	feedbackRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/feedback"
	paymentRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/payment"
	webhookEventRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/webhookevent"
	profileServiceClient "github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-MentorshipService/internal/integrations/stripeprovider"
	availabilityService "github.com/m04kA/SMC-MentorshipService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-MentorshipService/internal/service/bookings"
	feedbackService "github.com/m04kA/SMC-MentorshipService/internal/service/feedback"
	paymentsService "github.com/m04kA/SMC-MentorshipService/internal/service/payments"
	createBookingUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_booking"
	createPaymentIntentUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_payment_intent"
	getAvailableSlotsUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
	processPaymentEventUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/process_payment_event"
	recordConsentUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/record_mentee_consent"
	releasePayoutUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/release_payout"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/metrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MentorshipService...")

	commissionRate, err := cfg.CommissionRate()
	if err != nil {
		log.Fatal("Invalid commission rate: %v", err)
	}
	log.Info("Configuration loaded: commission=%.2f%%, auto_confirm_on_payment=%t, currency=%s",
		commissionRate.Percent(), cfg.Payments.AutoConfirmOnPayment, cfg.Stripe.Currency)

	// Метрики (nil-коллектор ничего не пишет)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Duration(cfg.Database.ConnMaxLifetime))

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Migrations.Enabled {
		migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
		err := migrations.Up(migrateCtx, db)
		cancelMigrate()
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграционные клиенты
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		config.Duration(cfg.ProfileService.Timeout),
		log,
	)
	stripeClient := stripeprovider.NewClient(stripeprovider.Config{
		SecretKey:        cfg.Stripe.SecretKey,
		WebhookSecret:    cfg.Stripe.WebhookSecret,
		Timeout:          config.Duration(cfg.Stripe.Timeout),
		WebhookTolerance: config.Duration(cfg.Stripe.WebhookTolerance),
	}, log)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, Stripe timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout, cfg.Stripe.Timeout)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	blockedDateRepository := blockedDateRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	balanceRepository := balanceRepo.NewRepository(wrappedDB)
	webhookEventRepository := webhookEventRepo.NewRepository(wrappedDB)
	feedbackRepository := feedbackRepo.NewRepository(wrappedDB)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		blockedDateRepository,
		bookingRepository,
		txMgr,
		log,
	)
	paymentsSvc := paymentsService.NewService(balanceRepository, paymentRepository, log)
	feedbackSvc := feedbackService.NewService(bookingRepository, feedbackRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		profileClient,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		blockedDateRepository,
		profileClient,
		log,
	)
	createPaymentIntentUseCase := createPaymentIntentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		stripeClient,
		txMgr,
		cfg.Stripe.Currency,
		log,
	)
	processPaymentEventUseCase := processPaymentEventUC.NewUseCase(
		stripeClient,
		webhookEventRepository,
		bookingRepository,
		paymentRepository,
		balanceRepository,
		txMgr,
		metricsCollector,
		commissionRate,
		cfg.Payments.AutoConfirmOnPayment,
		log,
	)
	releasePayoutUseCase := releasePayoutUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		balanceRepository,
		txMgr,
		metricsCollector,
		log,
	)
	recordConsentUseCase := recordConsentUC.NewUseCase(
		bookingRepository,
		releasePayoutUseCase,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	submitSummary := submitSummaryHandler.NewHandler(bookingSvc, log)
	recordConsent := recordConsentHandler.NewHandler(recordConsentUseCase, log)
	releasePayout := releasePayoutHandler.NewHandler(releasePayoutUseCase, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(createPaymentIntentUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(processPaymentEventUseCase, log)
	getBalance := getBalanceHandler.NewHandler(paymentsSvc, log)
	getPaymentHistory := getPaymentHistoryHandler.NewHandler(paymentsSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentsSvc, log)
	createAvailabilityRule := createAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	getMyAvailabilityRules := getMyAvailabilityRulesHandler.NewHandler(availabilitySvc, log)
	updateAvailabilityRule := updateAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	deleteAvailabilityRule := deleteAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(availabilitySvc, log)
	getMyBlockedDates := getMyBlockedDatesHandler.NewHandler(availabilitySvc, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(availabilitySvc, log)
	submitFeedback := submitFeedbackHandler.NewHandler(feedbackSvc, log)
	getMentorRatings := getMentorRatingsHandler.NewHandler(feedbackSvc, log)
	getMentorFeedback := getMentorFeedbackHandler.NewHandler(feedbackSvc, log)
	getMyFeedback := getMyFeedbackHandler.NewHandler(feedbackSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты ментора
	api.HandleFunc("/mentors/{mentorId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Рейтинг ментора
	api.HandleFunc("/mentors/{mentorId}/ratings", getMentorRatings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/feedback", getMentorFeedback.Handle).Methods(http.MethodGet)

	// Webhook платежного провайдера (аутентификация подписью события)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Доступность ментора ---
	// /me и /blocked-dates регистрируются раньше /{ruleId}
	protected.HandleFunc("/availability", createAvailabilityRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/me", getMyAvailabilityRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/blocked-dates/me", getMyBlockedDates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/availability/blocked-dates/{blockedDateId:[0-9]+}", deleteBlockedDate.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/availability/{ruleId:[0-9]+}", updateAvailabilityRule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/availability/{ruleId:[0-9]+}", deleteAvailabilityRule.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/me", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Закрытие сессии ---
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/summary", submitSummary.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/consent", recordConsent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/payout/release", releasePayout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/feedback", submitFeedback.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/feedback/me", getMyFeedback.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments/intent", createPaymentIntent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/balance", getBalance.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/history", getPaymentHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId:[0-9]+}", getPayment.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout),
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
