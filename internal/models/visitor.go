package models

import "time"

type Visitor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Company string `gorm:"size:200" json:"company"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`

	VisitorType string `gorm:"size:20;default:'ONETIME'" json:"visitor_type"`

	IsBlacklisted   bool   `gorm:"default:false" json:"is_blacklisted"`
	BlacklistReason string `gorm:"type:text" json:"blacklist_reason"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VisitorVisit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VisitorID uint    `json:"visitor_id"`
	Visitor   Visitor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"visitor"`

	MeetingID uint    `json:"meeting_id"`
	Meeting   Meeting `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"meeting"`

	Status string `gorm:"size:20;default:'SCHEDULED'" json:"status"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	BadgeNumber string `gorm:"size:40" json:"badge_number"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
