package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/config"
	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/dto"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/httpresp"
	"github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/middleware"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
	"github.com/meetingdesk/meeting-scheduler/internal/timezone"
	usecase "github.com/meetingdesk/meeting-scheduler/internal/usecase/meeting"
)

// ======================================================
// HANDLER
// ======================================================

type MeetingHandler struct {
	db   *gorm.DB
	repo *repository.MeetingGormRepository
	cfg  *config.Config

	create     *usecase.CreateMeeting
	reschedule *usecase.RescheduleMeeting
	transition *usecase.TransitionStatus
	expand     *usecase.ExpandRecurring
}

func NewMeetingHandler(
	db *gorm.DB,
	repo *repository.MeetingGormRepository,
	cfg *config.Config,
	create *usecase.CreateMeeting,
	reschedule *usecase.RescheduleMeeting,
	transition *usecase.TransitionStatus,
	expand *usecase.ExpandRecurring,
) *MeetingHandler {
	return &MeetingHandler{
		db:         db,
		repo:       repo,
		cfg:        cfg,
		create:     create,
		reschedule: reschedule,
		transition: transition,
		expand:     expand,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateMeetingRequest struct {
	Title string `json:"title" binding:"required"`

	VisitorID *uint `json:"visitor_id"`
	RoomID    *uint `json:"room_id"`

	ExternalLocation string `json:"external_location"`

	MeetingType string `json:"meeting_type"`
	Priority    string `json:"priority"`

	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	EndTime string `json:"end_time"`

	Description string `json:"description"`
	Agenda      string `json:"agenda"`
}

type RescheduleMeetingRequest struct {
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	EndTime string `json:"end_time"`

	RoomID           *uint  `json:"room_id"`
	ClearRoom        bool   `json:"clear_room"`
	ExternalLocation string `json:"external_location"`
}

type ExpandRecurringRequest struct {
	Frequency   string `json:"frequency" binding:"required"`
	RepeatUntil string `json:"repeat_until" binding:"required"`
	DaysOfWeek  string `json:"days_of_week"`
}

// parseSlot reads the date/time/end_time trio into a start and an optional
// end. An empty end_time yields a zero end; the validator fills the default
// duration.
func (h *MeetingHandler) parseSlot(date, startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDateTime(h.cfg.Timezone, date, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var end time.Time
	if endStr != "" {
		end, err = parseDateTime(h.cfg.Timezone, date, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *MeetingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	start, end, err := h.parseSlot(req.Date, req.Time, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	m, err := h.create.Execute(c.Request.Context(), usecase.CreateMeetingInput{
		Title:            req.Title,
		VisitorID:        req.VisitorID,
		RoomID:           req.RoomID,
		ExternalLocation: req.ExternalLocation,
		MeetingType:      req.MeetingType,
		Priority:         req.Priority,
		StartTime:        start,
		EndTime:          end,
		Description:      req.Description,
		Agenda:           req.Agenda,
		CreatedByID:      userID,
	})
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	c.JSON(201, m)
}

// ======================================================
// GET / LIST
// ======================================================

func (h *MeetingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid meeting id.")
		return
	}

	m, err := h.repo.GetMeeting(c.Request.Context(), uint(id))
	if err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "meeting_not_found", "Meeting not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load meeting.")
		return
	}

	httpresp.OK(c, m)
}

func (h *MeetingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := parseDate(h.cfg.Timezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	meetings, err := h.repo.ListMeetingsBetween(c.Request.Context(), start, end)
	if err != nil {
		httperr.Internal(c, "internal_error", "Failed to list meetings.")
		return
	}

	httpresp.List(c, dto.MeetingListFrom(meetings))
}

func (h *MeetingHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	loc := timezone.Location(h.cfg.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	meetings, err := h.repo.ListMeetingsBetween(c.Request.Context(), start, end)
	if err != nil {
		httperr.Internal(c, "internal_error", "Failed to list meetings.")
		return
	}

	c.JSON(200, gin.H{
		"year":     year,
		"month":    month,
		"meetings": dto.MeetingListFrom(meetings),
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *MeetingHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid meeting id.")
		return
	}

	var req RescheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	start, end, err := h.parseSlot(req.Date, req.Time, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	m, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleMeetingInput{
		MeetingID:        uint(id),
		StartTime:        start,
		EndTime:          end,
		RoomID:           req.RoomID,
		ClearRoom:        req.ClearRoom,
		ExternalLocation: req.ExternalLocation,
		UserID:           userID,
	})
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	httpresp.OK(c, m)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *MeetingHandler) Approve(c *gin.Context)  { h.runTransition(c, domain.StatusApproved) }
func (h *MeetingHandler) Reject(c *gin.Context)   { h.runTransition(c, domain.StatusRejected) }
func (h *MeetingHandler) Complete(c *gin.Context) { h.runTransition(c, domain.StatusCompleted) }
func (h *MeetingHandler) Cancel(c *gin.Context)   { h.runTransition(c, domain.StatusCancelled) }

func (h *MeetingHandler) runTransition(c *gin.Context, to domain.Status) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid meeting id.")
		return
	}

	m, err := h.transition.Execute(c.Request.Context(), uint(id), to, userID)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	httpresp.OK(c, m)
}

// ======================================================
// RECURRENCE
// ======================================================

func (h *MeetingHandler) ExpandRecurring(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid meeting id.")
		return
	}

	var req ExpandRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	until, err := parseDate(h.cfg.Timezone, req.RepeatUntil)
	if err != nil {
		httperr.BadRequest(c, "invalid_repeat_until", "Invalid repeat_until date.")
		return
	}

	result, err := h.expand.Execute(c.Request.Context(), usecase.ExpandRecurringInput{
		MeetingID:   uint(id),
		Frequency:   req.Frequency,
		RepeatUntil: until,
		DaysOfWeek:  req.DaysOfWeek,
		UserID:      userID,
	})
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	c.JSON(201, result)
}

// ======================================================
// ACTIVITY
// ======================================================

func (h *MeetingHandler) Activity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid meeting id.")
		return
	}

	var entries []models.ActivityLog
	if err := h.db.WithContext(c.Request.Context()).
		Where("meeting_id = ?", uint(id)).
		Order("created_at DESC").
		Limit(200).
		Find(&entries).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to load activity.")
		return
	}

	httpresp.List(c, entries)
}
