package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

func ts(day, hour, min int) time.Time {
	return time.Date(2024, time.June, day, hour, min, 0, 0, time.UTC)
}

func meetingRow(id uint, status string, start, end time.Time) models.Meeting {
	return models.Meeting{
		ID:          id,
		Status:      status,
		MeetingType: "SCHEDULED",
		StartTime:   start,
		EndTime:     end,
	}
}

func TestSummarizeMeetings(t *testing.T) {
	meetings := []models.Meeting{
		meetingRow(1, "COMPLETED", ts(10, 9, 0), ts(10, 10, 0)),  // 60 min
		meetingRow(2, "COMPLETED", ts(10, 11, 0), ts(10, 11, 30)), // 30 min
		meetingRow(3, "CANCELLED", ts(11, 9, 0), ts(11, 10, 0)),
		meetingRow(4, "PENDING", ts(12, 9, 0), ts(12, 10, 0)),
	}

	s := SummarizeMeetings(meetings)

	assert.Equal(t, 4, s.TotalMeetings)
	assert.Equal(t, 2, s.CompletedMeetings)
	assert.Equal(t, 1, s.CancelledMeetings)
	assert.Equal(t, map[string]int{"COMPLETED": 2, "CANCELLED": 1, "PENDING": 1}, s.ByStatus)

	require.NotNil(t, s.AvgDurationMinutes)
	assert.InDelta(t, 45.0, *s.AvgDurationMinutes, 0.001)
}

func TestSummarizeMeetingsUnknownDurations(t *testing.T) {
	t.Run("missing end excluded from average", func(t *testing.T) {
		meetings := []models.Meeting{
			meetingRow(1, "COMPLETED", ts(10, 9, 0), ts(10, 10, 0)),
			// An unscheduled drop-in that never recorded an end.
			meetingRow(2, "COMPLETED", ts(10, 11, 0), time.Time{}),
		}

		s := SummarizeMeetings(meetings)
		require.NotNil(t, s.AvgDurationMinutes)
		assert.InDelta(t, 60.0, *s.AvgDurationMinutes, 0.001)
	})

	t.Run("nil average when nothing is known", func(t *testing.T) {
		meetings := []models.Meeting{
			meetingRow(1, "COMPLETED", ts(10, 9, 0), time.Time{}),
			meetingRow(2, "PENDING", ts(10, 11, 0), ts(10, 12, 0)),
		}

		s := SummarizeMeetings(meetings)
		assert.Nil(t, s.AvgDurationMinutes)
	})

	t.Run("empty input", func(t *testing.T) {
		s := SummarizeMeetings(nil)
		assert.Equal(t, 0, s.TotalMeetings)
		assert.Nil(t, s.AvgDurationMinutes)
	})
}

func TestRoomUsageFor(t *testing.T) {
	room1, room2 := uint(1), uint(2)

	m1 := meetingRow(1, "COMPLETED", ts(10, 9, 0), ts(10, 10, 0))
	m1.RoomID = &room1
	m1.Room = &models.MeetingRoom{ID: room1, Name: "Bosphorus"}

	m2 := meetingRow(2, "COMPLETED", ts(10, 11, 0), ts(10, 12, 30))
	m2.RoomID = &room1
	m2.Room = m1.Room

	m3 := meetingRow(3, "APPROVED", ts(10, 9, 0), ts(10, 9, 30))
	m3.RoomID = &room2

	external := meetingRow(4, "COMPLETED", ts(10, 14, 0), ts(10, 15, 0))

	usage := RoomUsageFor([]models.Meeting{m1, m2, m3, external})

	require.Len(t, usage, 2)
	assert.Equal(t, "Bosphorus", usage[0].RoomName)
	assert.Equal(t, 2, usage[0].Meetings)
	assert.InDelta(t, 2.5, usage[0].TotalHours, 0.001)
	assert.Equal(t, room2, usage[1].RoomID)
	assert.Equal(t, 1, usage[1].Meetings)
}

func TestHourOfDayDistribution(t *testing.T) {
	meetings := []models.Meeting{
		meetingRow(1, "COMPLETED", ts(10, 9, 0), ts(10, 10, 0)),
		meetingRow(2, "COMPLETED", ts(11, 9, 30), ts(11, 10, 0)),
		meetingRow(3, "PENDING", ts(12, 14, 0), ts(12, 15, 0)),
	}

	hours := HourOfDayDistribution(meetings)
	assert.Equal(t, 2, hours[9])
	assert.Equal(t, 1, hours[14])
	assert.Equal(t, 0, hours[10])
}

func TestDailyDistribution(t *testing.T) {
	meetings := []models.Meeting{
		meetingRow(1, "COMPLETED", ts(11, 9, 0), ts(11, 10, 0)),
		meetingRow(2, "COMPLETED", ts(10, 9, 0), ts(10, 10, 0)),
		meetingRow(3, "PENDING", ts(10, 14, 0), ts(10, 15, 0)),
	}

	daily := DailyDistribution(meetings)

	assert.Equal(t, []DayCount{
		{Date: "2024-06-10", Count: 2},
		{Date: "2024-06-11", Count: 1},
	}, daily)
}

func visitRow(visitorID uint, status string, in, out *time.Time) models.VisitorVisit {
	return models.VisitorVisit{
		VisitorID:    visitorID,
		Visitor:      models.Visitor{ID: visitorID, Name: "Visitor", VisitorType: "REGULAR"},
		Status:       status,
		CheckInTime:  in,
		CheckOutTime: out,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestVisitorAnalytics(t *testing.T) {
	in1, out1 := ts(10, 9, 0), ts(10, 9, 45)
	in2 := ts(10, 10, 0)

	visits := []models.VisitorVisit{
		visitRow(1, "CHECKED_OUT", timePtr(in1), timePtr(out1)),
		visitRow(1, "CHECKED_IN", timePtr(in2), nil),
		visitRow(2, "SCHEDULED", nil, nil),
	}

	s := VisitorAnalytics(visits)

	assert.Equal(t, 3, s.TotalVisits)
	assert.Equal(t, 2, s.UniqueVisitors)
	require.NotNil(t, s.AvgVisitMinutes)
	assert.InDelta(t, 45.0, *s.AvgVisitMinutes, 0.001)
	assert.Equal(t, 1, s.ByStatus["SCHEDULED"])
}

func TestVisitorAnalyticsNoCompletedVisits(t *testing.T) {
	visits := []models.VisitorVisit{
		visitRow(1, "SCHEDULED", nil, nil),
	}

	s := VisitorAnalytics(visits)
	assert.Nil(t, s.AvgVisitMinutes)
}

func TestAttendanceBreakdown(t *testing.T) {
	in := ts(10, 9, 0)

	visits := []models.VisitorVisit{
		visitRow(1, "CHECKED_OUT", timePtr(in), timePtr(in.Add(time.Hour))),
		visitRow(1, "SCHEDULED", nil, nil),
		visitRow(2, "CHECKED_IN", timePtr(in), nil),
		visitRow(3, "CANCELLED", nil, nil),
	}

	s := AttendanceBreakdown(visits)

	assert.Equal(t, 4, s.TotalVisits)
	assert.Equal(t, 2, s.Attended)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 1, s.NoShow)

	require.Len(t, s.ByVisitor, 3)
	assert.Equal(t, 2, s.ByVisitor[0].Visits)
	assert.Equal(t, 1, s.ByVisitor[0].Attended)
}

func TestDurationHistogram(t *testing.T) {
	meetings := []models.Meeting{
		meetingRow(1, "COMPLETED", ts(10, 9, 0), ts(10, 9, 10)),  // 10 min
		meetingRow(2, "COMPLETED", ts(10, 9, 0), ts(10, 9, 45)),  // 45 min
		meetingRow(3, "COMPLETED", ts(10, 9, 0), ts(10, 12, 0)),  // 180 min
		meetingRow(4, "PENDING", ts(10, 9, 0), ts(10, 9, 5)),     // ignored
		meetingRow(5, "COMPLETED", ts(10, 9, 0), time.Time{}),    // unknown, ignored
	}

	buckets := DurationHistogram(meetings)

	require.Len(t, buckets, 5)
	assert.Equal(t, 1, buckets[0].Count) // 0-15
	assert.Equal(t, 0, buckets[1].Count) // 15-30
	assert.Equal(t, 1, buckets[2].Count) // 30-60
	assert.Equal(t, 0, buckets[3].Count) // 60-120
	assert.Equal(t, 1, buckets[4].Count) // 120+
}

func TestVisitDailyDistribution(t *testing.T) {
	withCheckIn := visitRow(1, "CHECKED_IN", timePtr(ts(11, 9, 0)), nil)
	withCheckIn.CreatedAt = ts(10, 8, 0)

	scheduled := visitRow(2, "SCHEDULED", nil, nil)
	scheduled.CreatedAt = ts(10, 8, 0)

	daily := VisitDailyDistribution([]models.VisitorVisit{withCheckIn, scheduled})

	assert.Equal(t, []DayCount{
		{Date: "2024-06-10", Count: 1},
		{Date: "2024-06-11", Count: 1},
	}, daily)
}
