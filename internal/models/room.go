package models

import "time"

type MeetingRoom struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Capacity   int    `json:"capacity"`
	Equipment  string `gorm:"type:text" json:"equipment"`
	Floor      string `gorm:"size:50" json:"floor"`
	RoomNumber string `gorm:"size:20" json:"room_number"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
