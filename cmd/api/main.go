package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/config"
	dbpkg "github.com/meetingdesk/meeting-scheduler/internal/db"
	infraRepo "github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/jobs"
	"github.com/meetingdesk/meeting-scheduler/internal/logging"
	"github.com/meetingdesk/meeting-scheduler/internal/notify"
	"github.com/meetingdesk/meeting-scheduler/internal/reportcache"
	"github.com/meetingdesk/meeting-scheduler/internal/routes"
	ucReport "github.com/meetingdesk/meeting-scheduler/internal/usecase/report"
)

func main() {

	cfg := config.Load()

	log := logging.NewLogger(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unreachable, report cache and job locks degraded", zap.Error(err))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	scheduler := startJobs(db, rdb, cfg, log)
	defer scheduler.Stop()

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func startJobs(
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *jobs.Scheduler {

	meetingRepo := infraRepo.NewMeetingGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)

	sender := notify.NewLogSender(log)
	cache := reportcache.New(rdb, log, 10*time.Minute)
	locker := jobs.NewRedisLocker(rdb)

	reminderJob := jobs.NewReminderJob(
		meetingRepo,
		sender,
		log,
		time.Duration(cfg.ReminderWindowMinutes)*time.Minute,
	)

	reportJob := jobs.NewScheduledReportJob(
		reportRepo,
		ucReport.NewGenerate(reportRepo, cache),
		locker,
		log,
	)

	scheduler := jobs.NewScheduler(log)
	if err := scheduler.Add(cfg.ReminderCron, "meeting_reminders", reminderJob.Run); err != nil {
		log.Fatal("invalid reminder cron", zap.Error(err))
	}
	if err := scheduler.Add(cfg.ReportCron, "scheduled_reports", reportJob.Run); err != nil {
		log.Fatal("invalid report cron", zap.Error(err))
	}
	scheduler.Start()

	return scheduler
}
