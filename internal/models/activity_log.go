package models

import "time"

type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `json:"user_id"`
	Action string `gorm:"size:50;not null" json:"action"`

	MeetingID *uint `json:"meeting_id"`

	OldStatus string `gorm:"size:20" json:"old_status"`
	NewStatus string `gorm:"size:20" json:"new_status"`

	Description string `gorm:"type:text" json:"description"`
	Metadata    string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
