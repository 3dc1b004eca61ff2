package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/audit"
	"github.com/meetingdesk/meeting-scheduler/internal/config"
	"github.com/meetingdesk/meeting-scheduler/internal/handlers"
	infraRepo "github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/middleware"
	"github.com/meetingdesk/meeting-scheduler/internal/notify"
	"github.com/meetingdesk/meeting-scheduler/internal/reportcache"
	ucMeeting "github.com/meetingdesk/meeting-scheduler/internal/usecase/meeting"
	ucReport "github.com/meetingdesk/meeting-scheduler/internal/usecase/report"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	meetingRepo := infraRepo.NewMeetingGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	sender := notify.NewLogSender(log)
	notifier := notify.NewDispatcher(sender, log)

	cache := reportcache.New(rdb, log, 10*time.Minute)

	// ======================================================
	// USE CASES
	// ======================================================
	createMeetingUC := ucMeeting.NewCreateMeeting(
		meetingRepo,
		auditDispatcher,
		notifier,
	)

	rescheduleMeetingUC := ucMeeting.NewRescheduleMeeting(
		meetingRepo,
		auditDispatcher,
		notifier,
	)

	transitionStatusUC := ucMeeting.NewTransitionStatus(
		meetingRepo,
		auditDispatcher,
		notifier,
		nil,
	)

	expandRecurringUC := ucMeeting.NewExpandRecurring(
		meetingRepo,
		auditDispatcher,
	)

	generateReportUC := ucReport.NewGenerate(reportRepo, cache)
	dashboardUC := ucReport.NewDashboard(reportRepo, cache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	meetingHandler := handlers.NewMeetingHandler(
		db,
		meetingRepo,
		cfg,
		createMeetingUC,
		rescheduleMeetingUC,
		transitionStatusUC,
		expandRecurringUC,
	)

	roomHandler := handlers.NewRoomHandler(db, meetingRepo, cfg)
	visitorHandler := handlers.NewVisitorHandler(db, auditDispatcher)
	reportHandler := handlers.NewReportHandler(db, cfg, generateReportUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)

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
			// ------------------------------
			// MEETINGS
			// ------------------------------
			secured.POST("/meetings", meetingHandler.Create)
			secured.GET("/meetings", meetingHandler.ListByDate)
			secured.GET("/meetings/month", meetingHandler.ListByMonth)
			secured.GET("/meetings/:id", meetingHandler.Get)
			secured.GET("/meetings/:id/activity", meetingHandler.Activity)
			secured.PATCH("/meetings/:id/reschedule", meetingHandler.Reschedule)
			secured.PATCH("/meetings/:id/approve", meetingHandler.Approve)
			secured.PATCH("/meetings/:id/reject", meetingHandler.Reject)
			secured.PATCH("/meetings/:id/complete", meetingHandler.Complete)
			secured.PATCH("/meetings/:id/cancel", meetingHandler.Cancel)
			secured.POST("/meetings/:id/recurrences", meetingHandler.ExpandRecurring)

			// ------------------------------
			// ROOMS
			// ------------------------------
			secured.GET("/rooms", roomHandler.List)
			secured.GET("/rooms/:id", roomHandler.Get)
			secured.GET("/rooms/:id/availability", roomHandler.Availability)
			secured.GET("/rooms/:id/schedule", roomHandler.Schedule)

			adminRooms := secured.Group("/rooms")
			adminRooms.Use(middleware.RequireRole("admin"))
			{
				adminRooms.POST("", roomHandler.Create)
				adminRooms.PATCH("/:id", roomHandler.Update)
				adminRooms.DELETE("/:id", roomHandler.Deactivate)
			}

			// ------------------------------
			// VISITORS
			// ------------------------------
			secured.POST("/visitors", visitorHandler.Create)
			secured.GET("/visitors", visitorHandler.List)
			secured.GET("/visitors/:id", visitorHandler.Get)
			secured.PATCH("/visitors/:id", visitorHandler.Update)
			secured.POST("/visitors/:id/blacklist", visitorHandler.Blacklist)
			secured.POST("/visitors/:id/visits", visitorHandler.CreateVisit)
			secured.PATCH("/visits/:visitId/check-in", visitorHandler.CheckIn)
			secured.PATCH("/visits/:visitId/check-out", visitorHandler.CheckOut)

			// ------------------------------
			// REPORTS
			// ------------------------------
			secured.GET("/reports/generate", reportHandler.Generate)
			secured.POST("/reports", reportHandler.Create)
			secured.GET("/reports", reportHandler.List)
			secured.GET("/reports/:id/executions", reportHandler.Executions)

			// ------------------------------
			// DASHBOARD
			// ------------------------------
			secured.GET("/dashboard/widgets/:kind", dashboardHandler.Widget)
		}
	}
}
