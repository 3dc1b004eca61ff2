package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) ListMeetingsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Meeting, error) {

	var meetings []models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *ReportGormRepository) ListVisitsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.VisitorVisit, error) {

	var visits []models.VisitorVisit
	if err := r.db.WithContext(ctx).
		Preload("Visitor").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// --------------------------------------------------
// Scheduled reports
// --------------------------------------------------

func (r *ReportGormRepository) ListScheduledReports(
	ctx context.Context,
) ([]models.Report, error) {

	var reports []models.Report
	if err := r.db.WithContext(ctx).
		Where("is_scheduled = true").
		Order("id ASC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *ReportGormRepository) CreateExecution(
	ctx context.Context,
	ex *models.ReportExecution,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *ReportGormRepository) UpdateExecution(
	ctx context.Context,
	ex *models.ReportExecution,
) error {
	return r.db.WithContext(ctx).Save(ex).Error
}

// Compile-time check
var _ domain.Repository = (*ReportGormRepository)(nil)
