package handlers

import (
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/timezone"
)

// All request dates and times are interpreted in the instance timezone.

func parseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

func parseDateTime(tz, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(tz),
	)
}
