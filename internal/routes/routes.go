package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Deps are the long-lived collaborators built by the serve command.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions *session.Manager
	Audit    audit.Recorder
	Mail     ucAppointment.Notifier
	Cache    cache.Cache
	Metrics  *metrics.Metrics

	// Now overrides the shop clock, for tests.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	shopRepo := infraRepo.NewShopGormRepository(d.DB)

	now := d.Now
	if now == nil {
		now = timezone.Clock(cfg.ShopTimezone)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(
		appointmentRepo,
		d.Audit,
		d.Mail,
		d.Metrics,
		ucAppointment.BookingOptions{
			PhoneRegion: cfg.PhoneRegion,
			ShopName:    cfg.ShopName,
		},
	)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, now)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Sessions, d.Audit, cfg.CheckEmailDomain)
	meHandler := handlers.NewMeHandler(d.DB)
	shopHandler := handlers.NewShopHandler(shopRepo, appointmentRepo, d.Cache, cfg.ShopCacheTTL, d.Audit)
	serviceHandler := handlers.NewServiceHandler(shopRepo, appointmentRepo, d.Cache, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(createBookingUC, listAppointmentsUC, d.Cache)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	limiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/shop", shopHandler.Get)
		api.GET("/services", serviceHandler.List)

		// ------------------------------
		// AUTH
		// ------------------------------
		authGroup := api.Group("/auth")
		authGroup.Use(limiter.Middleware())
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(d.Sessions))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/appointments", appointmentHandler.Mine)
			secured.POST("/appointments", appointmentHandler.Create)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(d.Sessions), middleware.AdminMiddleware())
		{
			admin.POST("/shop", shopHandler.Replace)

			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/appointments", appointmentHandler.List)
			admin.GET("/appointments/grouped", appointmentHandler.Grouped)
			admin.GET("/appointments/stats", appointmentHandler.Stats)

			admin.GET("/users", meHandler.ListUsers)
			admin.GET("/admin/audit-logs", auditLogsHandler.List)
		}
	}
}
