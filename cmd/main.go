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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/create_appointment"
	declareAvailabilityHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/declare_availability"
	getAppointmentHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/get_appointment"
	getOpenSlotsHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/get_open_slots"
	getTeacherAppointmentsHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/get_teacher_appointments"
	removeAvailabilityHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/remove_availability"
	resolveAccessCodeHandler "github.com/m04kA/PTC-AppointmentService/internal/api/handlers/resolve_access_code"
	"github.com/m04kA/PTC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/PTC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/appointment"
	auditRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/audit"
	slotRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/slot"
	studentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/student"
	accessCodeService "github.com/m04kA/PTC-AppointmentService/internal/service/accesscode"
	appointmentsService "github.com/m04kA/PTC-AppointmentService/internal/service/appointments"
	availabilityService "github.com/m04kA/PTC-AppointmentService/internal/service/availability"
	bookSlotUC "github.com/m04kA/PTC-AppointmentService/internal/usecase/book_slot"
	cancelAppointmentUC "github.com/m04kA/PTC-AppointmentService/internal/usecase/cancel_appointment"
	declareAvailabilityUC "github.com/m04kA/PTC-AppointmentService/internal/usecase/declare_availability"
	removeAvailabilityUC "github.com/m04kA/PTC-AppointmentService/internal/usecase/remove_availability"
	"github.com/m04kA/PTC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/logger"
	"github.com/m04kA/PTC-AppointmentService/pkg/metrics"
	"github.com/m04kA/PTC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/PTC-AppointmentService/pkg/txmanager"
)

func main() {
	// .env необязателен: локальная разработка держит креды БД в нем
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PTC-AppointmentService...")
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		slots        *slotRepo.Repository
		appointments *appointmentRepo.Repository
		students     *studentRepo.Repository
		audit        *auditRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slots = slotRepo.NewRepository(wrappedDB)
		appointments = appointmentRepo.NewRepository(wrappedDB)
		students = studentRepo.NewRepository(wrappedDB)
		audit = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slots = slotRepo.NewRepository(db)
		appointments = appointmentRepo.NewRepository(db)
		students = studentRepo.NewRepository(db)
		audit = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	accessCodeSvc := accessCodeService.NewService(students, log)
	availabilitySvc := availabilityService.NewService(slots, log)
	appointmentsSvc := appointmentsService.NewService(appointments, log)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(slots, appointments, audit, accessCodeSvc, txMgr, log)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(appointments, audit, accessCodeSvc, txMgr, log)
	declareAvailabilityUseCase := declareAvailabilityUC.NewUseCase(slots, audit, txMgr, log)
	removeAvailabilityUseCase := removeAvailabilityUC.NewUseCase(slots, appointments, audit, txMgr, log)

	// Инициализируем handlers
	resolveAccessCode := resolveAccessCodeHandler.NewHandler(accessCodeSvc, log)
	getOpenSlots := getOpenSlotsHandler.NewHandler(availabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(bookSlotUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	declareAvailability := declareAvailabilityHandler.NewHandler(declareAvailabilityUseCase, log)
	removeAvailability := removeAvailabilityHandler.NewHandler(removeAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getTeacherAppointments := getTeacherAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (родители, авторизация кодом доступа в теле)
	// ============================================================

	// Разрешение родительского кода доступа
	api.HandleFunc("/access-codes/resolve", resolveAccessCode.Handle).Methods(http.MethodPost)

	// Бронирование слота родителем
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Маршруты, поведение которых меняется при наличии заголовка авторизации
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Отмена записи (родитель с кодом доступа; учитель с заголовком авторизации)
	public.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Открытые слоты учителя (include_booked=true доступен только владельцу)
	public.HandleFunc("/teachers/{teacherId}/slots", getOpenSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Teacher-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Доступность ---
	protected.HandleFunc("/availability", declareAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability", removeAvailability.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/teachers/{teacherId}/appointments", getTeacherAppointments.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
