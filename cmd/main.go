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

	cancelReservationHandler "github.com/tutorlane/booking-service/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/tutorlane/booking-service/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/tutorlane/booking-service/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_available_slots"
	getCourseUsageHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_course_usage"
	getPlansHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_plans"
	getReservationHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_reservation"
	getStudentReservationsHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_student_reservations"
	getTeacherScheduleHandler "github.com/tutorlane/booking-service/internal/api/handlers/get_teacher_schedule"
	updateReservationTimeHandler "github.com/tutorlane/booking-service/internal/api/handlers/update_reservation_time"
	"github.com/tutorlane/booking-service/internal/api/middleware"
	"github.com/tutorlane/booking-service/internal/app"
	"github.com/tutorlane/booking-service/internal/config"
	"github.com/tutorlane/booking-service/internal/domain"
	reservationRepo "github.com/tutorlane/booking-service/internal/infra/storage/reservation"
	userServiceClient "github.com/tutorlane/booking-service/internal/integrations/userservice"
	reservationsService "github.com/tutorlane/booking-service/internal/service/reservations"
	createReservationUC "github.com/tutorlane/booking-service/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/tutorlane/booking-service/internal/usecase/get_available_slots"
	"github.com/tutorlane/booking-service/pkg/dbmetrics"
	"github.com/tutorlane/booking-service/pkg/logger"
	"github.com/tutorlane/booking-service/pkg/metrics"
	"github.com/tutorlane/booking-service/pkg/txmanager"
	"github.com/tutorlane/booking-service/pkg/types"
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := app.NewMigrator(db, cfg.Database.Migrations)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database migrations applied, version=%d", version)
	}

	// Политика расписания занятий
	policy := bookingPolicy(cfg, log)

	// Инициализируем интеграционного клиента
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		txMgr                 *txmanager.Manager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.Wrap(db, metricsCollector, stopMetricsCh)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = txmanager.NewManager(db)
	}

	// Инициализируем сервис
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		userClient,
		txMgr,
		policy,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		userClient,
		txMgr,
		policy,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		policy,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getPlans := getPlansHandler.NewHandler(log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	updateReservationTime := updateReservationTimeHandler.NewHandler(reservationSvc, log)
	getStudentReservations := getStudentReservationsHandler.NewHandler(reservationSvc, log)
	getCourseUsage := getCourseUsageHandler.NewHandler(reservationSvc, log)
	getTeacherSchedule := getTeacherScheduleHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Limit)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов преподавателя на дату
	api.HandleFunc("/teachers/{teacherId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог тарифных планов
	api.HandleFunc("/plans", getPlans.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer-токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Отметка занятия проведенным
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на другое время
	protected.HandleFunc("/reservations/{reservationId}/time", updateReservationTime.Handle).Methods(http.MethodPatch)

	// --- Студенты ---
	// История бронирований студента
	protected.HandleFunc("/students/{studentId}/reservations", getStudentReservations.Handle).Methods(http.MethodGet)

	// Месячная квота студента по тарифному плану
	protected.HandleFunc("/students/{studentId}/course-usage", getCourseUsage.Handle).Methods(http.MethodGet)

	// --- Преподаватели (для персонала) ---
	// Расписание преподавателя на дату
	protected.HandleFunc("/teachers/{teacherId}/schedule", getTeacherSchedule.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed: %v", err)
	}

	log.Info("Server stopped")
}

// bookingPolicy собирает политику расписания из конфигурации,
// откатываясь на дефолты при некорректных значениях
func bookingPolicy(cfg *config.Config, log *logger.Logger) domain.BookingPolicy {
	policy := domain.DefaultBookingPolicy()

	if cfg.Booking.OpenTime != "" {
		open, err := types.NewTimeStringFromString(cfg.Booking.OpenTime)
		if err != nil {
			log.Warn("Invalid booking.open_time %q, using default %s", cfg.Booking.OpenTime, policy.Hours.Open)
		} else {
			policy.Hours.Open = open
		}
	}

	if cfg.Booking.CloseTime != "" {
		closeAt, err := types.NewTimeStringFromString(cfg.Booking.CloseTime)
		if err != nil {
			log.Warn("Invalid booking.close_time %q, using default %s", cfg.Booking.CloseTime, policy.Hours.Close)
		} else {
			policy.Hours.Close = closeAt
		}
	}

	if cfg.Booking.LessonDurationMinutes > 0 {
		policy.LessonDurationMinutes = cfg.Booking.LessonDurationMinutes
	}

	return policy
}
