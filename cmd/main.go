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

	cancelLessonHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/cancel_lesson"
	createAvailabilityHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/create_availability"
	createBlockedSlotHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/create_blocked_slot"
	createLessonHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/create_lesson"
	createSubscriptionHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/create_subscription"
	deleteAvailabilityHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/delete_availability"
	deleteBlockedSlotHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/delete_blocked_slot"
	getAvailableSlotsHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_available_slots"
	getBookableDatesHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_bookable_dates"
	getLessonHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_lesson"
	getPaymentsSummaryHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_payments_summary"
	getTeacherConfigHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_teacher_config"
	getTeacherLessonsHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_teacher_lessons"
	getTeacherPaymentsHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_teacher_payments"
	getTeacherScheduleHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_teacher_schedule"
	getUserLessonsHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_user_lessons"
	getUserSubscriptionsHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/get_user_subscriptions"
	updateLessonStatusHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/update_lesson_status"
	updatePaymentStatusHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/update_payment_status"
	updateTeacherConfigHandler "github.com/m04kA/MTC-LessonService/internal/api/handlers/update_teacher_config"
	"github.com/m04kA/MTC-LessonService/internal/api/middleware"
	"github.com/m04kA/MTC-LessonService/internal/config"
	availabilityRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/availability"
	blockedSlotRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/blockedslot"
	lessonRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/lesson"
	notificationRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/notification"
	paymentRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/payment"
	subscriptionRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/subscription"
	teacherProfileRepo "github.com/m04kA/MTC-LessonService/internal/infra/storage/teacherprofile"
	configService "github.com/m04kA/MTC-LessonService/internal/service/config"
	lessonsService "github.com/m04kA/MTC-LessonService/internal/service/lessons"
	paymentsService "github.com/m04kA/MTC-LessonService/internal/service/payments"
	scheduleService "github.com/m04kA/MTC-LessonService/internal/service/schedule"
	subscriptionsService "github.com/m04kA/MTC-LessonService/internal/service/subscriptions"
	createLessonUC "github.com/m04kA/MTC-LessonService/internal/usecase/create_lesson"
	getAvailableSlotsUC "github.com/m04kA/MTC-LessonService/internal/usecase/get_available_slots"
	getBookableDatesUC "github.com/m04kA/MTC-LessonService/internal/usecase/get_bookable_dates"
	"github.com/m04kA/MTC-LessonService/pkg/dbmetrics"
	"github.com/m04kA/MTC-LessonService/pkg/logger"
	"github.com/m04kA/MTC-LessonService/pkg/metrics"
	"github.com/m04kA/MTC-LessonService/pkg/simpletxmanager"
	"github.com/m04kA/MTC-LessonService/pkg/txmanager"
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

	log.Info("Starting MTC-LessonService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		lessonRepository         *lessonRepo.Repository
		availabilityRepository   *availabilityRepo.Repository
		blockedSlotRepository    *blockedSlotRepo.Repository
		paymentRepository        *paymentRepo.Repository
		subscriptionRepository   *subscriptionRepo.Repository
		teacherProfileRepository *teacherProfileRepo.Repository
		notificationRepository   *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		lessonRepository = lessonRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		subscriptionRepository = subscriptionRepo.NewRepository(wrappedDB)
		teacherProfileRepository = teacherProfileRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		lessonRepository = lessonRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		subscriptionRepository = subscriptionRepo.NewRepository(db)
		teacherProfileRepository = teacherProfileRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	lessonSvc := lessonsService.NewService(
		lessonRepository,
		notificationRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		blockedSlotRepository,
		log,
	)
	paymentSvc := paymentsService.NewService(paymentRepository, log)
	configSvc := configService.NewService(teacherProfileRepository, log)
	subscriptionSvc := subscriptionsService.NewService(subscriptionRepository, log)

	// Инициализируем use cases
	createLessonUseCase := createLessonUC.NewUseCase(
		lessonRepository,
		paymentRepository,
		notificationRepository,
		subscriptionRepository,
		teacherProfileRepository,
		availabilityRepository,
		blockedSlotRepository,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		blockedSlotRepository,
		lessonRepository,
		log,
	)

	getBookableDatesUseCase := getBookableDatesUC.NewUseCase(
		availabilityRepository,
		blockedSlotRepository,
		lessonRepository,
		teacherProfileRepository,
		log,
	)

	// Инициализируем handlers
	createLesson := createLessonHandler.NewHandler(createLessonUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookableDates := getBookableDatesHandler.NewHandler(getBookableDatesUseCase, log)
	getLesson := getLessonHandler.NewHandler(lessonSvc, log)
	cancelLesson := cancelLessonHandler.NewHandler(lessonSvc, log)
	updateLessonStatus := updateLessonStatusHandler.NewHandler(lessonSvc, log)
	getUserLessons := getUserLessonsHandler.NewHandler(lessonSvc, log)
	getTeacherLessons := getTeacherLessonsHandler.NewHandler(lessonSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(scheduleSvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(scheduleSvc, log)
	createBlockedSlot := createBlockedSlotHandler.NewHandler(scheduleSvc, log)
	deleteBlockedSlot := deleteBlockedSlotHandler.NewHandler(scheduleSvc, log)
	getTeacherSchedule := getTeacherScheduleHandler.NewHandler(scheduleSvc, log)
	getTeacherConfig := getTeacherConfigHandler.NewHandler(configSvc, log)
	updateTeacherConfig := updateTeacherConfigHandler.NewHandler(configSvc, log)
	createSubscription := createSubscriptionHandler.NewHandler(subscriptionSvc, log)
	getUserSubscriptions := getUserSubscriptionsHandler.NewHandler(subscriptionSvc, log)
	getTeacherPayments := getTeacherPaymentsHandler.NewHandler(paymentSvc, log)
	getPaymentsSummary := getPaymentsSummaryHandler.NewHandler(paymentSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(paymentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты преподавателя на дату
	api.HandleFunc("/teachers/{teacherId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Дни месяца, доступные для бронирования
	api.HandleFunc("/teachers/{teacherId}/bookable-dates",
		getBookableDates.Handle).Methods(http.MethodGet)

	// Конфигурация преподавателя
	api.HandleFunc("/teachers/{teacherId}/config",
		getTeacherConfig.Handle).Methods(http.MethodGet)

	// Недельное расписание и блокировки преподавателя
	api.HandleFunc("/teachers/{teacherId}/schedule",
		getTeacherSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Занятия ---
	// Бронирование занятия
	protected.HandleFunc("/lessons", createLesson.Handle).Methods(http.MethodPost)

	// Получение занятия по ID
	protected.HandleFunc("/lessons/{lessonId}", getLesson.Handle).Methods(http.MethodGet)

	// Отмена занятия
	protected.HandleFunc("/lessons/{lessonId}/cancel", cancelLesson.Handle).Methods(http.MethodPatch)

	// Решение преподавателя: подтвердить, отклонить, завершить
	protected.HandleFunc("/lessons/{lessonId}/status", updateLessonStatus.Handle).Methods(http.MethodPatch)

	// История занятий студента
	protected.HandleFunc("/users/{userId}/lessons", getUserLessons.Handle).Methods(http.MethodGet)

	// Календарь занятий преподавателя
	protected.HandleFunc("/teachers/{teacherId}/lessons", getTeacherLessons.Handle).Methods(http.MethodGet)

	// --- Расписание преподавателя ---
	protected.HandleFunc("/teachers/{teacherId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/teachers/{teacherId}/availability/{availabilityId}",
		deleteAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/teachers/{teacherId}/blocked-slots", createBlockedSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/teachers/{teacherId}/blocked-slots/{blockedSlotId}",
		deleteBlockedSlot.Handle).Methods(http.MethodDelete)

	// --- Конфигурация преподавателя ---
	protected.HandleFunc("/teachers/{teacherId}/config", updateTeacherConfig.Handle).Methods(http.MethodPut)

	// --- Подписки ---
	protected.HandleFunc("/subscriptions", createSubscription.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/subscriptions", getUserSubscriptions.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/teachers/{teacherId}/payments/summary", getPaymentsSummary.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/teachers/{teacherId}/payments", getTeacherPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}/status", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
