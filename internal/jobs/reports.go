package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type ReportStore interface {
	ListScheduledReports(ctx context.Context) ([]models.Report, error)
	CreateExecution(ctx context.Context, ex *models.ReportExecution) error
	UpdateExecution(ctx context.Context, ex *models.ReportExecution) error
}

// Generator is the report use case behind the job.
type Generator interface {
	Execute(ctx context.Context, kind domain.Kind, start, end time.Time) (*domain.Result, error)
}

// reportLockTTL bounds how long a crashed generation can hold its lock.
const reportLockTTL = 15 * time.Minute

// ScheduledReportJob runs every scheduled report that is due. Each report is
// guarded by a redis lock so overlapping job ticks (or a second instance)
// never generate the same report twice, and every run leaves a
// ReportExecution record whether it succeeded or failed.
type ScheduledReportJob struct {
	store     ReportStore
	generator Generator
	locker    Locker
	log       *zap.Logger
	now       func() time.Time
}

func NewScheduledReportJob(
	store ReportStore,
	generator Generator,
	locker Locker,
	log *zap.Logger,
) *ScheduledReportJob {
	return &ScheduledReportJob{
		store:     store,
		generator: generator,
		locker:    locker,
		log:       log,
		now:       time.Now,
	}
}

func (j *ScheduledReportJob) Run(ctx context.Context) {
	reports, err := j.store.ListScheduledReports(ctx)
	if err != nil {
		j.log.Error("scheduled report scan failed", zap.Error(err))
		return
	}

	for i := range reports {
		// Per-item isolation: one failing report leaves the rest unaffected.
		j.runOne(ctx, &reports[i])
	}
}

func (j *ScheduledReportJob) runOne(ctx context.Context, r *models.Report) {
	lockKey := fmt.Sprintf("report:lock:%d", r.ID)
	ok, err := j.locker.Acquire(ctx, lockKey, reportLockTTL)
	if err != nil {
		j.log.Error("report lock acquisition failed",
			zap.Uint("report_id", r.ID), zap.Error(err))
		return
	}
	if !ok {
		j.log.Info("report generation already running, skipping",
			zap.Uint("report_id", r.ID))
		return
	}
	defer func() {
		if err := j.locker.Release(ctx, lockKey); err != nil {
			j.log.Warn("report lock release failed",
				zap.Uint("report_id", r.ID), zap.Error(err))
		}
	}()

	started := j.now()
	ex := &models.ReportExecution{
		ReportID:    r.ID,
		ExecutionID: uuid.NewString(),
		Status:      "IN_PROGRESS",
		StartedAt:   &started,
	}
	if err := j.store.CreateExecution(ctx, ex); err != nil {
		j.log.Error("report execution record failed",
			zap.Uint("report_id", r.ID), zap.Error(err))
		return
	}

	start, end := j.window(r)
	result, err := j.generator.Execute(ctx, domain.Kind(r.ReportType), start, end)

	finished := j.now()
	ex.FinishedAt = &finished

	if err != nil {
		ex.Status = "FAILED"
		ex.ErrorMessage = err.Error()
		j.log.Error("report generation failed",
			zap.Uint("report_id", r.ID), zap.Error(err))
	} else {
		ex.Status = "COMPLETED"
		if raw, merr := json.Marshal(result); merr == nil {
			ex.Result = string(raw)
		}
	}

	if err := j.store.UpdateExecution(ctx, ex); err != nil {
		j.log.Error("report execution update failed",
			zap.Uint("report_id", r.ID), zap.Error(err))
	}
}

// window resolves the date range for a scheduled run: the trailing period
// implied by the schedule frequency, falling back to the report's stored
// range for one-off definitions.
func (j *ScheduledReportJob) window(r *models.Report) (time.Time, time.Time) {
	end := j.now()
	switch r.ScheduleFrequency {
	case "daily":
		return end.AddDate(0, 0, -1), end
	case "weekly":
		return end.AddDate(0, 0, -7), end
	case "monthly":
		return end.AddDate(0, -1, 0), end
	default:
		return r.StartDate, r.EndDate
	}
}
