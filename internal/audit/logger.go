package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	meetingID *uint,
	oldStatus string,
	newStatus string,
	description string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.ActivityLog{
		UserID:      userID,
		Action:      action,
		MeetingID:   meetingID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		Description: description,
		Metadata:    metaJSON,
	}

	return l.db.Create(&entry).Error
}
