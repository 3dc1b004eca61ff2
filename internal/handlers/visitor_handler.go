package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/audit"
	visitordomain "github.com/meetingdesk/meeting-scheduler/internal/domain/visitor"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/httpresp"
	"github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/middleware"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
	"github.com/meetingdesk/meeting-scheduler/internal/timezone"
	"github.com/meetingdesk/meeting-scheduler/internal/validators"
)

type VisitorHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewVisitorHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *VisitorHandler {
	return &VisitorHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type VisitorRequest struct {
	Name        string `json:"name" binding:"required"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	VisitorType string `json:"visitor_type"`
	Notes       string `json:"notes"`
}

type BlacklistRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type VisitRequest struct {
	MeetingID uint   `json:"meeting_id" binding:"required"`
	Notes     string `json:"notes"`
}

// --------- Visitors ---------

func (h *VisitorHandler) Create(c *gin.Context) {
	var req VisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	visitorType := visitordomain.Type(req.VisitorType)
	if req.VisitorType == "" {
		visitorType = visitordomain.TypeOnetime
	}
	if !visitorType.Valid() {
		httperr.BadRequest(c, "invalid_visitor_type", "Invalid visitor type.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not resolve.")
		return
	}

	visitor := models.Visitor{
		Name:        req.Name,
		Company:     req.Company,
		Phone:       req.Phone,
		Email:       email,
		VisitorType: string(visitorType),
		Notes:       req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&visitor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_visitor", "Failed to create visitor.")
		return
	}

	c.JSON(201, visitor)
}

func (h *VisitorHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("name ASC")
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR company ILIKE ?", like, like)
	}

	var visitors []models.Visitor
	if err := q.Limit(200).Find(&visitors).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list visitors.")
		return
	}

	httpresp.List(c, visitors)
}

func (h *VisitorHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visitor id.")
		return
	}

	var visitor models.Visitor
	if err := h.db.WithContext(c.Request.Context()).First(&visitor, uint(id)).Error; err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "visitor_not_found", "Visitor not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load visitor.")
		return
	}

	httpresp.OK(c, visitor)
}

func (h *VisitorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visitor id.")
		return
	}

	var visitor models.Visitor
	if err := h.db.WithContext(c.Request.Context()).First(&visitor, uint(id)).Error; err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "visitor_not_found", "Visitor not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load visitor.")
		return
	}

	var req VisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	if req.VisitorType != "" && !visitordomain.Type(req.VisitorType).Valid() {
		httperr.BadRequest(c, "invalid_visitor_type", "Invalid visitor type.")
		return
	}

	visitor.Name = req.Name
	visitor.Company = req.Company
	visitor.Phone = req.Phone
	visitor.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.VisitorType != "" {
		visitor.VisitorType = req.VisitorType
	}
	visitor.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).Save(&visitor).Error; err != nil {
		httperr.Internal(c, "failed_to_update_visitor", "Failed to update visitor.")
		return
	}

	httpresp.OK(c, visitor)
}

// --------- Blacklist ---------

func (h *VisitorHandler) Blacklist(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visitor id.")
		return
	}

	var req BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Reason is required.")
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.Visitor{}).
		Where("id = ?", uint(id)).
		Updates(map[string]any{
			"is_blacklisted":   true,
			"blacklist_reason": req.Reason,
		})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_update_visitor", "Failed to blacklist visitor.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "visitor_not_found", "Visitor not found.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:      &userID,
		Action:      "visitor_blacklisted",
		Description: req.Reason,
	})

	c.JSON(200, gin.H{"blacklisted": true})
}

// --------- Visits ---------

func (h *VisitorHandler) CreateVisit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visitor id.")
		return
	}
	visitorID := uint(id)

	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	var visitor models.Visitor
	if err := h.db.WithContext(c.Request.Context()).First(&visitor, visitorID).Error; err != nil {
		httperr.NotFound(c, "visitor_not_found", "Visitor not found.")
		return
	}
	if visitor.IsBlacklisted {
		httperr.BadRequest(c, "visitor_blacklisted", "Visitor is blacklisted.")
		return
	}

	var meeting models.Meeting
	if err := h.db.WithContext(c.Request.Context()).First(&meeting, req.MeetingID).Error; err != nil {
		httperr.NotFound(c, "meeting_not_found", "Meeting not found.")
		return
	}

	visit := models.VisitorVisit{
		VisitorID: visitorID,
		MeetingID: req.MeetingID,
		Status:    string(visitordomain.VisitScheduled),
		Notes:     req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&visit).Error; err != nil {
		httperr.Internal(c, "failed_to_create_visit", "Failed to create visit.")
		return
	}

	c.JSON(201, visit)
}

// CheckIn stamps the arrival and issues a badge number for the visit.
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}

	if err := visitordomain.CheckIn(visit, timezone.Now()); err != nil {
		httperr.BadRequest(c, "invalid_visit_state", "Visit cannot be checked in.")
		return
	}
	visit.BadgeNumber = uuid.NewString()

	if err := h.db.WithContext(c.Request.Context()).Save(visit).Error; err != nil {
		httperr.Internal(c, "failed_to_update_visit", "Failed to check in.")
		return
	}

	httpresp.OK(c, visit)
}

func (h *VisitorHandler) CheckOut(c *gin.Context) {
	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}

	if err := visitordomain.CheckOut(visit, timezone.Now()); err != nil {
		httperr.BadRequest(c, "invalid_visit_state", "Visit cannot be checked out.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(visit).Error; err != nil {
		httperr.Internal(c, "failed_to_update_visit", "Failed to check out.")
		return
	}

	httpresp.OK(c, visit)
}

func (h *VisitorHandler) loadVisit(c *gin.Context) (*models.VisitorVisit, bool) {
	id, err := strconv.ParseUint(c.Param("visitId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid visit id.")
		return nil, false
	}

	var visit models.VisitorVisit
	if err := h.db.WithContext(c.Request.Context()).First(&visit, uint(id)).Error; err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "visit_not_found", "Visit not found.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Failed to load visit.")
		return nil, false
	}

	return &visit, true
}
