package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/config"
	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/httpresp"
	"github.com/meetingdesk/meeting-scheduler/internal/infra/repository"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type RoomHandler struct {
	db      *gorm.DB
	repo    *repository.MeetingGormRepository
	checker *domain.AvailabilityChecker
	cfg     *config.Config
}

func NewRoomHandler(
	db *gorm.DB,
	repo *repository.MeetingGormRepository,
	cfg *config.Config,
) *RoomHandler {
	return &RoomHandler{
		db:      db,
		repo:    repo,
		checker: domain.NewAvailabilityChecker(repo),
		cfg:     cfg,
	}
}

// --------- Requests ---------

type RoomRequest struct {
	Name       string `json:"name" binding:"required"`
	Capacity   int    `json:"capacity"`
	Equipment  string `json:"equipment"`
	Floor      string `json:"floor"`
	RoomNumber string `json:"room_number"`
	IsActive   *bool  `json:"is_active"`
}

// --------- CRUD ---------

func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	room := models.MeetingRoom{
		Name:       req.Name,
		Capacity:   req.Capacity,
		Equipment:  req.Equipment,
		Floor:      req.Floor,
		RoomNumber: req.RoomNumber,
		IsActive:   true,
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_create_room", "Failed to create room.")
		return
	}

	c.JSON(201, room)
}

func (h *RoomHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("name ASC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = true")
	}

	var rooms []models.MeetingRoom
	if err := q.Find(&rooms).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list rooms.")
		return
	}

	httpresp.List(c, rooms)
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}

	room, err := h.repo.GetRoom(c.Request.Context(), uint(id))
	if err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "room_not_found", "Room not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load room.")
		return
	}

	httpresp.OK(c, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}

	room, err := h.repo.GetRoom(c.Request.Context(), uint(id))
	if err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "room_not_found", "Room not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load room.")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request payload.")
		return
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Equipment = req.Equipment
	room.Floor = req.Floor
	room.RoomNumber = req.RoomNumber
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Save(room).Error; err != nil {
		httperr.Internal(c, "failed_to_update_room", "Failed to update room.")
		return
	}

	httpresp.OK(c, room)
}

// Deactivate retires a room instead of deleting it so historic meetings keep
// their location.
func (h *RoomHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.MeetingRoom{}).
		Where("id = ?", uint(id)).
		Update("is_active", false)
	if result.Error != nil {
		httperr.Internal(c, "failed_to_update_room", "Failed to deactivate room.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "room_not_found", "Room not found.")
		return
	}

	c.JSON(200, gin.H{"deactivated": true})
}

// --------- Availability ---------

// Availability answers GET /rooms/:id/availability?date=...&time=...&end_time=...
// with whether the slot is free, and the conflicting meeting when it is not.
func (h *RoomHandler) Availability(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}
	roomID := uint(id)

	if _, err := h.repo.GetRoom(c.Request.Context(), roomID); err != nil {
		if repository.NotFound(err) {
			httperr.NotFound(c, "room_not_found", "Room not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Failed to load room.")
		return
	}

	start, err := parseDateTime(h.cfg.Timezone, c.Query("date"), c.Query("time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	iv := domain.Interval{Start: start}
	if endStr := c.Query("end_time"); endStr != "" {
		end, err := parseDateTime(h.cfg.Timezone, c.Query("date"), endStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid end time.")
			return
		}
		iv.End = end
	}
	iv = iv.WithDefaultEnd()

	if !iv.Valid() {
		httperr.BadRequest(c, "invalid_interval", "Start time must be before end time.")
		return
	}

	available, conflict, err := h.checker.IsAvailable(c.Request.Context(), &roomID, iv, 0)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	resp := gin.H{
		"room_id":    roomID,
		"start_time": iv.Start,
		"end_time":   iv.End,
		"available":  available,
	}
	if conflict != nil {
		resp["conflicting_meeting"] = gin.H{
			"id":         conflict.ID,
			"title":      conflict.Title,
			"start_time": conflict.StartTime,
			"end_time":   conflict.EndTime,
		}
	}

	c.JSON(200, resp)
}

// Schedule lists a room's active meetings overlapping a day.
func (h *RoomHandler) Schedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid room id.")
		return
	}

	date, err := parseDate(h.cfg.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start := date
	end := date.AddDate(0, 0, 1)

	meetings, err := h.repo.ListMeetingsForRoom(c.Request.Context(), uint(id), start, end)
	if err != nil {
		httperr.Internal(c, "internal_error", "Failed to list room schedule.")
		return
	}

	httpresp.List(c, meetings)
}
