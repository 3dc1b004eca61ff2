package models

import "time"

type Meeting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title string `gorm:"size:200;not null" json:"title"`

	VisitorID *uint    `json:"visitor_id"`
	Visitor   *Visitor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"visitor,omitempty"`

	MeetingType string `gorm:"size:20;default:'SCHEDULED'" json:"meeting_type"`
	Status      string `gorm:"size:20;default:'PENDING'" json:"status"`
	Priority    string `gorm:"size:10;default:'MEDIUM'" json:"priority"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// RoomID is nullable: meetings held outside the building carry only
	// ExternalLocation.
	RoomID *uint        `gorm:"column:room_id" json:"room_id"`
	Room   *MeetingRoom `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location,omitempty"`

	ExternalLocation string `gorm:"size:200" json:"external_location"`

	Description string `gorm:"type:text" json:"description"`
	Agenda      string `gorm:"type:text" json:"agenda"`

	CreatedByID uint  `json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"created_by,omitempty"`

	IsRecurring        bool       `gorm:"default:false" json:"is_recurring"`
	RecurrencePattern  string     `gorm:"size:10;default:'NONE'" json:"recurrence_pattern"`
	RecurrenceEndDate  *time.Time `json:"recurrence_end_date"`

	// ParentMeetingID is a weak back-reference to the recurring template that
	// generated this instance. No FK constraint: deleting the template leaves
	// generated children in place.
	ParentMeetingID *uint `gorm:"index" json:"parent_meeting_id"`

	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMinutes returns the meeting length in minutes, or false when the end
// time is unset and the duration is unknown.
func (m *Meeting) DurationMinutes() (float64, bool) {
	if m.EndTime.IsZero() {
		return 0, false
	}
	return m.EndTime.Sub(m.StartTime).Minutes(), true
}

type RecurringMeetingRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MeetingID uint    `gorm:"uniqueIndex" json:"meeting_id"`
	Meeting   Meeting `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"meeting"`

	Frequency   string    `gorm:"size:20;not null" json:"frequency"`
	RepeatUntil time.Time `gorm:"not null" json:"repeat_until"`

	// DaysOfWeek holds ISO weekday numbers as "1,3" (Monday=1). Only
	// meaningful for WEEKLY rules.
	DaysOfWeek string `gorm:"size:20" json:"days_of_week"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}
