package report

// Kind enumerates the report types. Generation switches over Kind
// exhaustively, so adding a kind is a compile-time exercise rather than a
// string-keyed dispatch.
type Kind string

const (
	KindMeetingSummary   Kind = "MEETING_SUMMARY"
	KindVisitorAnalytics Kind = "VISITOR_ANALYTICS"
	KindRoomUsage        Kind = "ROOM_USAGE"
	KindAttendance       Kind = "ATTENDANCE"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMeetingSummary, KindVisitorAnalytics, KindRoomUsage, KindAttendance:
		return true
	}
	return false
}

// WidgetKind enumerates the dashboard widgets, same tagged-union treatment as
// Kind.
type WidgetKind string

const (
	WidgetMeetingTrend    WidgetKind = "MEETING_TREND"
	WidgetMeetingStatus   WidgetKind = "MEETING_STATUS"
	WidgetMeetingDuration WidgetKind = "MEETING_DURATION"
	WidgetVisitorTrend    WidgetKind = "VISITOR_TREND"
)

func (k WidgetKind) Valid() bool {
	switch k {
	case WidgetMeetingTrend, WidgetMeetingStatus, WidgetMeetingDuration, WidgetVisitorTrend:
		return true
	}
	return false
}
