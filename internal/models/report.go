package models

import "time"

type Report struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title      string `gorm:"size:200;not null" json:"title"`
	ReportType string `gorm:"size:20;not null" json:"report_type"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Parameters string `gorm:"type:text" json:"parameters"`

	IsScheduled       bool   `gorm:"default:false" json:"is_scheduled"`
	ScheduleFrequency string `gorm:"size:20" json:"schedule_frequency"`

	CreatedByID uint `json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReportExecution struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReportID uint   `json:"report_id"`
	Report   Report `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"report"`

	ExecutionID string `gorm:"size:40;uniqueIndex" json:"execution_id"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`

	Result       string `gorm:"type:text" json:"result"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`

	CreatedAt time.Time `json:"created_at"`
}
