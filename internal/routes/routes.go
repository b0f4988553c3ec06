package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trimsalon/salon-queue-api/internal/config"
	"github.com/trimsalon/salon-queue-api/internal/handlers"
	"github.com/trimsalon/salon-queue-api/internal/metrics"
	"github.com/trimsalon/salon-queue-api/internal/middleware"
	"github.com/trimsalon/salon-queue-api/internal/queuecache"
	"github.com/trimsalon/salon-queue-api/internal/realtime"
	appointmentuc "github.com/trimsalon/salon-queue-api/internal/usecase/appointment"
	barberuc "github.com/trimsalon/salon-queue-api/internal/usecase/barber"
	salonuc "github.com/trimsalon/salon-queue-api/internal/usecase/salon"
)

// Deps carries the singletons built in main; routes only assembles
// handlers on top of them.
type Deps struct {
	Log     *zap.Logger
	Hub     *realtime.Hub
	Cache   *queuecache.Cache
	Metrics *metrics.Metrics

	CreateWalkIn    *appointmentuc.CreateWalkIn
	CreateScheduled *appointmentuc.CreateScheduled
	UpdateStatus    *appointmentuc.UpdateStatus
	Cancel          *appointmentuc.CancelAppointment
	Transfer        *appointmentuc.TransferAppointment
	Delay           *appointmentuc.AddDelay

	UpdateSchedule   *barberuc.UpdateWeeklySchedule
	UpdateNonWorking *barberuc.UpdateNonWorkingDays
	UpdateCategory   *barberuc.UpdateCategory
	RequestLeave     *barberuc.RequestLeave
	DecideLeave      *barberuc.DecideLeave

	CloseSalon  *salonuc.CloseSalon
	ReopenSalon *salonuc.ReopenSalon
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		d.CreateWalkIn,
		d.CreateScheduled,
		d.UpdateStatus,
		d.Cancel,
		d.Transfer,
		d.Delay,
		d.Metrics,
	)
	barberHandler := handlers.NewBarberHandler(
		db,
		d.Cache,
		d.UpdateSchedule,
		d.UpdateNonWorking,
		d.UpdateCategory,
		d.Log,
	)
	leaveHandler := handlers.NewLeaveHandler(d.RequestLeave, d.DecideLeave)
	salonHandler := handlers.NewSalonHandler(d.CloseSalon, d.ReopenSalon)
	wsHandler := handlers.NewWSHandler(d.Hub, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/devices", authHandler.RegisterDevice)
			secured.GET("/ws", wsHandler.Serve)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments/walkin", appointmentHandler.CreateWalkIn)
			secured.POST("/appointments/scheduled", appointmentHandler.CreateScheduled)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(middleware.RoleBarber))
			{
				staff.POST("/appointments/:id/delay", appointmentHandler.Delay)
				staff.POST("/appointments/:id/transfer", appointmentHandler.Transfer)

				// ------------------------------
				// BARBER CONFIGURATION
				// ------------------------------
				staff.PUT("/barbers/:id/schedule", barberHandler.UpdateSchedule)
				staff.PUT("/barbers/:id/non-working-days", barberHandler.UpdateNonWorkingDays)
				staff.PUT("/barbers/:id/category", barberHandler.UpdateCategory)

				// ------------------------------
				// LEAVES
				// ------------------------------
				staff.POST("/leaves", leaveHandler.Request)
				staff.PATCH("/leaves/:id", leaveHandler.Decide)

				// ------------------------------
				// SALON
				// ------------------------------
				staff.POST("/salon/close", salonHandler.Close)
				staff.POST("/salon/reopen", salonHandler.Reopen)
			}

			// ------------------------------
			// QUEUE / SLOTS (read)
			// ------------------------------
			secured.GET("/barbers/:id/queue", barberHandler.Queue)
			secured.GET("/barbers/:id/slots", barberHandler.Slots)
		}
	}
}
