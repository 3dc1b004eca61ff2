package dto

import (
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type MeetingListDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	RoomName    string    `json:"room_name"`
	VisitorName string    `json:"visitor_name"`
	IsRecurring bool      `json:"is_recurring"`
}

func MeetingListFrom(meetings []models.Meeting) []MeetingListDTO {
	out := make([]MeetingListDTO, 0, len(meetings))
	for _, m := range meetings {
		item := MeetingListDTO{
			ID:          m.ID,
			Title:       m.Title,
			StartTime:   m.StartTime,
			EndTime:     m.EndTime,
			Status:      m.Status,
			Priority:    m.Priority,
			IsRecurring: m.IsRecurring,
		}
		if m.Room != nil {
			item.RoomName = m.Room.Name
		} else {
			item.RoomName = m.ExternalLocation
		}
		if m.Visitor != nil {
			item.VisitorName = m.Visitor.Name
		}
		out = append(out, item)
	}
	return out
}
