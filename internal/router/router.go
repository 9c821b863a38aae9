package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	admissionh "github.com/medicore/hospital-api/internal/handler/admission"
	appointmenth "github.com/medicore/hospital-api/internal/handler/appointment"
	authh "github.com/medicore/hospital-api/internal/handler/auth"
	billingh "github.com/medicore/hospital-api/internal/handler/billing"
	dashboardh "github.com/medicore/hospital-api/internal/handler/dashboard"
	healthh "github.com/medicore/hospital-api/internal/handler/health"
	labtesth "github.com/medicore/hospital-api/internal/handler/labtest"
	medicineh "github.com/medicore/hospital-api/internal/handler/medicine"
	patienth "github.com/medicore/hospital-api/internal/handler/patient"
	prescriptionh "github.com/medicore/hospital-api/internal/handler/prescription"
	userh "github.com/medicore/hospital-api/internal/handler/user"
	wardh "github.com/medicore/hospital-api/internal/handler/ward"
	"github.com/medicore/hospital-api/internal/middleware"
	"github.com/medicore/hospital-api/internal/model"
)

type Handlers struct {
	Auth         *authh.Handler
	User         *userh.Handler
	Patient      *patienth.Handler
	Ward         *wardh.Handler
	Admission    *admissionh.Handler
	Appointment  *appointmenth.Handler
	Prescription *prescriptionh.Handler
	LabTest      *labtesth.Handler
	Medicine     *medicineh.Handler
	Billing      *billingh.Handler
	Dashboard    *dashboardh.Handler
	Health       *healthh.Handler
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MetricsPath      string
}

type Router struct {
	engine   *gin.Engine
	gate     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(gate *middleware.AuthMiddleware, handlers Handlers, logger zerolog.Logger, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		gate:     gate,
		handlers: handlers,
		metrics:  initRouterMetrics("hospital_api"),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(logger),
		r.metricsMiddleware(),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	metricsPath := config.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	engine.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	return r
}

// Setup registers every route group with its role gate
func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.gate.RequireAuth())

	r.handlers.Auth.RegisterProtectedRoutes(protected)
	r.handlers.Dashboard.RegisterRoutes(protected)

	// Admin-only staff management
	admin := protected.Group("")
	admin.Use(r.gate.RequireRole(model.RoleAdmin))
	r.handlers.User.RegisterRoutes(admin)
	r.handlers.Ward.RegisterRoutes(admin)

	// Doctor directory feeds the booking and admission forms
	directory := protected.Group("")
	directory.Use(r.gate.RequireRole(
		model.RoleAdmin, model.RoleReceptionist, model.RoleDoctor, model.RoleNurse))
	r.handlers.User.RegisterDirectoryRoutes(directory)

	// Ward occupancy report for ward staff
	occupancy := protected.Group("")
	occupancy.Use(r.gate.RequireRole(
		model.RoleAdmin, model.RoleReceptionist, model.RoleNurse))
	r.handlers.Ward.RegisterOccupancyRoutes(occupancy)

	// Patient records: reception and admin write, clinicians read
	patientRead := protected.Group("")
	patientRead.Use(r.gate.RequireRole(
		model.RoleReceptionist, model.RoleAdmin, model.RoleDoctor, model.RoleNurse))
	r.handlers.Patient.RegisterReadRoutes(patientRead)

	patientWrite := protected.Group("")
	patientWrite.Use(r.gate.RequireRole(model.RoleReceptionist, model.RoleAdmin))
	r.handlers.Patient.RegisterWriteRoutes(patientWrite)

	// Mixed-role resources gate per route
	r.handlers.Admission.RegisterRoutes(protected, r.gate)
	r.handlers.Appointment.RegisterRoutes(protected, r.gate)
	r.handlers.Prescription.RegisterRoutes(protected, r.gate)
	r.handlers.LabTest.RegisterRoutes(protected, r.gate)

	pharmacy := protected.Group("")
	pharmacy.Use(r.gate.RequireRole(model.RolePharmacist, model.RoleAdmin))
	r.handlers.Medicine.RegisterRoutes(pharmacy)

	billing := protected.Group("")
	billing.Use(r.gate.RequireRole(model.RoleReceptionist, model.RoleAdmin))
	r.handlers.Billing.RegisterRoutes(billing)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
