package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/config"
	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/httpresp"
	"github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/middleware"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
	usecase "github.com/meetingdesk/meeting-scheduler/internal/usecase/report"
)

type ReportHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	generate *usecase.Generate
}

func NewReportHandler(db *gorm.DB, cfg *config.Config, generate *usecase.Generate) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg, generate: generate}
}

// --------- Requests ---------

type ReportDefinitionRequest struct {
	Title      string `json:"title" binding:"required"`
	ReportType string `json:"report_type" binding:"required"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	IsScheduled       bool   `json:"is_scheduled"`
	ScheduleFrequency string `json:"schedule_frequency"`
}

// --------- Generate ---------

// Generate answers GET /reports/generate?type=...&start_date=...&end_date=...
// with a freshly computed (or cached) report.
func (h *ReportHandler) Generate(c *gin.Context) {
	kind := domain.Kind(c.Query("type"))

	start, err := parseDate(h.cfg.Timezone, c.Query("start_date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Invalid start date.")
		return
	}
	end, err := parseDate(h.cfg.Timezone, c.Query("end_date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "Invalid end date.")
		return
	}

	result, err := h.generate.Execute(c.Request.Context(), kind, start, end)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// --------- Definitions ---------

func (h *ReportHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReportDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if !domain.Kind(req.ReportType).Valid() {
		httperr.BadRequest(c, "invalid_report_type", "Invalid report type.")
		return
	}

	report := models.Report{
		Title:             req.Title,
		ReportType:        req.ReportType,
		IsScheduled:       req.IsScheduled,
		ScheduleFrequency: req.ScheduleFrequency,
		CreatedByID:       userID,
	}

	if req.StartDate != "" {
		start, err := parseDate(h.cfg.Timezone, req.StartDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_start_date", "Invalid start date.")
			return
		}
		report.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseDate(h.cfg.Timezone, req.EndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_end_date", "Invalid end date.")
			return
		}
		report.EndDate = end
	}

	if report.IsScheduled {
		switch report.ScheduleFrequency {
		case "daily", "weekly", "monthly":
		default:
			httperr.BadRequest(c, "invalid_schedule_frequency", "Schedule frequency must be daily, weekly or monthly.")
			return
		}
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&report).Error; err != nil {
		httperr.Internal(c, "failed_to_create_report", "Failed to create report.")
		return
	}

	c.JSON(201, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	var reports []models.Report
	if err := h.db.WithContext(c.Request.Context()).
		Order("id DESC").
		Limit(200).
		Find(&reports).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list reports.")
		return
	}

	httpresp.List(c, reports)
}

// --------- Executions ---------

func (h *ReportHandler) Executions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid report id.")
		return
	}

	var report models.Report
	if err := h.db.WithContext(c.Request.Context()).First(&report, uint(id)).Error; err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "report_not_found", "Report not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load report.")
		return
	}

	var executions []models.ReportExecution
	if err := h.db.WithContext(c.Request.Context()).
		Where("report_id = ?", report.ID).
		Order("id DESC").
		Limit(50).
		Find(&executions).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list executions.")
		return
	}

	httpresp.List(c, executions)
}
