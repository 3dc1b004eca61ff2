package report

import (
	"sort"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// All aggregation here is pure read-side computation over rows already loaded
// for a date range. Meetings without an end time have unknown duration and are
// excluded from averages and hour totals, never counted as zero.

// ===============================
// Meeting summary
// ===============================

type MeetingSummary struct {
	TotalMeetings     int `json:"total_meetings"`
	CompletedMeetings int `json:"completed_meetings"`
	CancelledMeetings int `json:"cancelled_meetings"`

	// AvgDurationMinutes is nil when no completed meeting has a known
	// duration.
	AvgDurationMinutes *float64 `json:"avg_duration_minutes"`

	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
}

func SummarizeMeetings(meetings []models.Meeting) MeetingSummary {
	s := MeetingSummary{
		TotalMeetings: len(meetings),
		ByStatus:      make(map[string]int),
		ByType:        make(map[string]int),
	}

	var totalMinutes float64
	var known int

	for i := range meetings {
		m := &meetings[i]
		s.ByStatus[m.Status]++
		s.ByType[m.MeetingType]++

		switch m.Status {
		case "COMPLETED":
			s.CompletedMeetings++
			if minutes, ok := m.DurationMinutes(); ok {
				totalMinutes += minutes
				known++
			}
		case "CANCELLED":
			s.CancelledMeetings++
		}
	}

	if known > 0 {
		avg := totalMinutes / float64(known)
		s.AvgDurationMinutes = &avg
	}
	return s
}

// ===============================
// Room usage
// ===============================

type RoomUsage struct {
	RoomID     uint    `json:"room_id"`
	RoomName   string  `json:"room_name"`
	Meetings   int     `json:"meetings"`
	TotalHours float64 `json:"total_hours"`
}

// RoomUsageFor tallies per-room meeting counts and booked hours. External
// meetings (no room) are left out.
func RoomUsageFor(meetings []models.Meeting) []RoomUsage {
	byRoom := make(map[uint]*RoomUsage)

	for i := range meetings {
		m := &meetings[i]
		if m.RoomID == nil {
			continue
		}

		u, ok := byRoom[*m.RoomID]
		if !ok {
			u = &RoomUsage{RoomID: *m.RoomID}
			if m.Room != nil {
				u.RoomName = m.Room.Name
			}
			byRoom[*m.RoomID] = u
		}

		u.Meetings++
		if minutes, known := m.DurationMinutes(); known {
			u.TotalHours += minutes / 60
		}
	}

	out := make([]RoomUsage, 0, len(byRoom))
	for _, u := range byRoom {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out
}

// HourOfDayDistribution buckets meetings by their starting hour.
func HourOfDayDistribution(meetings []models.Meeting) [24]int {
	var hours [24]int
	for i := range meetings {
		hours[meetings[i].StartTime.Hour()]++
	}
	return hours
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyDistribution counts meetings per calendar day, sorted by date.
func DailyDistribution(meetings []models.Meeting) []DayCount {
	byDay := make(map[string]int)
	for i := range meetings {
		byDay[meetings[i].StartTime.Format("2006-01-02")]++
	}

	out := make([]DayCount, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ===============================
// Visitor analytics
// ===============================

type VisitorStats struct {
	TotalVisits    int `json:"total_visits"`
	UniqueVisitors int `json:"unique_visitors"`

	// AvgVisitMinutes covers visits with both check-in and check-out stamps.
	AvgVisitMinutes *float64 `json:"avg_visit_minutes"`

	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

func VisitorAnalytics(visits []models.VisitorVisit) VisitorStats {
	s := VisitorStats{
		TotalVisits: len(visits),
		ByType:      make(map[string]int),
		ByStatus:    make(map[string]int),
	}

	seen := make(map[uint]struct{})
	var totalMinutes float64
	var known int

	for i := range visits {
		v := &visits[i]
		seen[v.VisitorID] = struct{}{}
		s.ByType[v.Visitor.VisitorType]++
		s.ByStatus[v.Status]++

		if v.CheckInTime != nil && v.CheckOutTime != nil {
			totalMinutes += v.CheckOutTime.Sub(*v.CheckInTime).Minutes()
			known++
		}
	}

	s.UniqueVisitors = len(seen)
	if known > 0 {
		avg := totalMinutes / float64(known)
		s.AvgVisitMinutes = &avg
	}
	return s
}

// VisitDailyDistribution counts visits per calendar day of arrival (falling
// back to the record's creation day before check-in), sorted by date.
func VisitDailyDistribution(visits []models.VisitorVisit) []DayCount {
	byDay := make(map[string]int)
	for i := range visits {
		v := &visits[i]
		day := v.CreatedAt
		if v.CheckInTime != nil {
			day = *v.CheckInTime
		}
		byDay[day.Format("2006-01-02")]++
	}

	out := make([]DayCount, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ===============================
// Attendance
// ===============================

type VisitorAttendance struct {
	VisitorID uint   `json:"visitor_id"`
	Name      string `json:"name"`
	Visits    int    `json:"visits"`
	Attended  int    `json:"attended"`
}

type AttendanceStats struct {
	TotalVisits int                 `json:"total_visits"`
	Attended    int                 `json:"attended"`
	Cancelled   int                 `json:"cancelled"`
	NoShow      int                 `json:"no_show"`
	ByVisitor   []VisitorAttendance `json:"by_visitor"`
}

// AttendanceBreakdown treats CHECKED_IN and CHECKED_OUT as attended; visits
// still SCHEDULED by report time count as no-shows.
func AttendanceBreakdown(visits []models.VisitorVisit) AttendanceStats {
	s := AttendanceStats{TotalVisits: len(visits)}
	byVisitor := make(map[uint]*VisitorAttendance)

	for i := range visits {
		v := &visits[i]

		a, ok := byVisitor[v.VisitorID]
		if !ok {
			a = &VisitorAttendance{VisitorID: v.VisitorID, Name: v.Visitor.Name}
			byVisitor[v.VisitorID] = a
		}
		a.Visits++

		switch v.Status {
		case "CHECKED_IN", "CHECKED_OUT":
			s.Attended++
			a.Attended++
		case "CANCELLED":
			s.Cancelled++
		default:
			s.NoShow++
		}
	}

	s.ByVisitor = make([]VisitorAttendance, 0, len(byVisitor))
	for _, a := range byVisitor {
		s.ByVisitor = append(s.ByVisitor, *a)
	}
	sort.Slice(s.ByVisitor, func(i, j int) bool { return s.ByVisitor[i].VisitorID < s.ByVisitor[j].VisitorID })
	return s
}

// ===============================
// Dashboard widgets
// ===============================

type DurationBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DurationHistogram buckets completed-meeting durations into fixed bands.
func DurationHistogram(meetings []models.Meeting) []DurationBucket {
	bounds := []float64{15, 30, 60, 120}
	labels := []string{"0-15", "15-30", "30-60", "60-120", "120+"}

	counts := make([]int, len(labels))
	for i := range meetings {
		m := &meetings[i]
		if m.Status != "COMPLETED" {
			continue
		}
		minutes, ok := m.DurationMinutes()
		if !ok {
			continue
		}

		bucket := len(bounds)
		for b, limit := range bounds {
			if minutes <= limit {
				bucket = b
				break
			}
		}
		counts[bucket]++
	}

	out := make([]DurationBucket, len(labels))
	for i, label := range labels {
		out[i] = DurationBucket{Label: label + " min", Count: counts[i]}
	}
	return out
}

// ===============================
// Result union
// ===============================

// Result is the tagged union handed to renderers and the cache. Exactly one
// payload field is set, matching Kind.
type Result struct {
	Kind        Kind      `json:"kind"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	GeneratedAt time.Time `json:"generated_at"`

	MeetingSummary   *MeetingSummaryData `json:"meeting_summary,omitempty"`
	VisitorAnalytics *VisitorStats       `json:"visitor_analytics,omitempty"`
	RoomUsage        *RoomUsageData      `json:"room_usage,omitempty"`
	Attendance       *AttendanceStats    `json:"attendance,omitempty"`
}

type MeetingSummaryData struct {
	Summary MeetingSummary `json:"summary"`
	Daily   []DayCount     `json:"daily"`
}

type RoomUsageData struct {
	Rooms     []RoomUsage `json:"rooms"`
	HourOfDay [24]int     `json:"hour_of_day"`
}
