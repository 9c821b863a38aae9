package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medicore/hospital-api/config"
	"github.com/medicore/hospital-api/internal/email"
	admissionHandler "github.com/medicore/hospital-api/internal/handler/admission"
	appointmentHandler "github.com/medicore/hospital-api/internal/handler/appointment"
	authHandler "github.com/medicore/hospital-api/internal/handler/auth"
	billingHandler "github.com/medicore/hospital-api/internal/handler/billing"
	dashboardHandler "github.com/medicore/hospital-api/internal/handler/dashboard"
	healthHandler "github.com/medicore/hospital-api/internal/handler/health"
	labtestHandler "github.com/medicore/hospital-api/internal/handler/labtest"
	medicineHandler "github.com/medicore/hospital-api/internal/handler/medicine"
	patientHandler "github.com/medicore/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/medicore/hospital-api/internal/handler/prescription"
	userHandler "github.com/medicore/hospital-api/internal/handler/user"
	wardHandler "github.com/medicore/hospital-api/internal/handler/ward"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/repository/postgres"
	"github.com/medicore/hospital-api/internal/router"
	admissionService "github.com/medicore/hospital-api/internal/service/admission"
	appointmentService "github.com/medicore/hospital-api/internal/service/appointment"
	authService "github.com/medicore/hospital-api/internal/service/auth"
	billingService "github.com/medicore/hospital-api/internal/service/billing"
	dashboardService "github.com/medicore/hospital-api/internal/service/dashboard"
	labtestService "github.com/medicore/hospital-api/internal/service/labtest"
	medicineService "github.com/medicore/hospital-api/internal/service/medicine"
	patientService "github.com/medicore/hospital-api/internal/service/patient"
	prescriptionService "github.com/medicore/hospital-api/internal/service/prescription"
	userService "github.com/medicore/hospital-api/internal/service/user"
	wardService "github.com/medicore/hospital-api/internal/service/ward"
	"github.com/medicore/hospital-api/internal/session"
	"github.com/medicore/hospital-api/pkg/auth"
	"github.com/medicore/hospital-api/pkg/logger"
	"github.com/medicore/hospital-api/pkg/security"
	"github.com/medicore/hospital-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	if err := validator.RegisterCustom(); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	sessions := newSessionStore(cfg, appLogger)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	wardRepo := postgres.NewWardRepository(db)
	admissionRepo := postgres.NewAdmissionRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	labTestRepo := postgres.NewLabTestRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	billRepo := postgres.NewBillRepository(db)
	statsRepo := postgres.NewStatsRepository(db)

	// Shared infrastructure
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	jwtSvc := auth.NewJWTService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		"hospital-api",
	)
	mailer := email.NewService(cfg.SMTP, appLogger)

	// Services
	authSvc := authService.NewService(userRepo, sessions, hasher, jwtSvc, cfg.JWT.ExpiryHours*3600, appLogger)
	userSvc := userService.NewService(userRepo, hasher, mailer, appLogger)
	patientSvc := patientService.NewService(patientRepo, appointmentRepo, admissionRepo, prescriptionRepo, labTestRepo, appLogger)
	wardSvc := wardService.NewService(wardRepo, appLogger)
	admissionSvc := admissionService.NewService(admissionRepo, wardRepo, patientRepo, appLogger)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, appLogger)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, patientRepo, appLogger)
	labTestSvc := labtestService.NewService(labTestRepo, patientRepo, cfg.Upload.Dir, appLogger)
	medicineSvc := medicineService.NewService(medicineRepo, appLogger)
	billingSvc := billingService.NewService(billRepo, patientRepo, appLogger)
	dashboardSvc := dashboardService.NewService(statsRepo, appLogger)

	gate := middleware.NewAuthMiddleware(sessions, jwtSvc)

	handlers := router.Handlers{
		Auth:         authHandler.NewHandler(authSvc, int(cfg.Session.TTL.Seconds())),
		User:         userHandler.NewHandler(userSvc),
		Patient:      patientHandler.NewHandler(patientSvc),
		Ward:         wardHandler.NewHandler(wardSvc),
		Admission:    admissionHandler.NewHandler(admissionSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Prescription: prescriptionHandler.NewHandler(prescriptionSvc),
		LabTest:      labtestHandler.NewHandler(labTestSvc),
		Medicine:     medicineHandler.NewHandler(medicineSvc),
		Billing:      billingHandler.NewHandler(billingSvc),
		Dashboard:    dashboardHandler.NewHandler(dashboardSvc),
		Health:       healthHandler.NewHandler(db),
	}

	r := router.NewRouter(gate, handlers, appLogger, router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       corsConfig(cfg),
		MetricsPath:      cfg.Monitoring.MetricsPath,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server exited properly")
}

func newSessionStore(cfg *config.Config, appLogger zerolog.Logger) session.Store {
	if cfg.Session.Backend == "redis" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to parse redis url")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		appLogger.Info().Msg("using redis session store")
		return session.NewRedisStore(client, cfg.Session.TTL)
	}

	appLogger.Info().Msg("using in-memory session store")
	return session.NewMemoryStore(cfg.Session.TTL)
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.Security.AllowedHeaders
	}
	return corsCfg
}
