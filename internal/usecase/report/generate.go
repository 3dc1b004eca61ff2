package report

import (
	"context"
	"time"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/reportcache"
)

type Generate struct {
	repo  domain.Repository
	cache *reportcache.Cache
}

func NewGenerate(repo domain.Repository, cache *reportcache.Cache) *Generate {
	return &Generate{repo: repo, cache: cache}
}

// Execute builds the report for an inclusive [startDate, endDate] range. The
// switch over Kind is exhaustive: a new kind will not compile without a
// branch here.
func (uc *Generate) Execute(
	ctx context.Context,
	kind domain.Kind,
	startDate time.Time,
	endDate time.Time,
) (*domain.Result, error) {

	if !kind.Valid() {
		return nil, httperr.ErrBusiness("invalid_report_type")
	}
	if endDate.Before(startDate) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	key := reportcache.ReportKey(string(kind), startDate, endDate, "")
	var cached domain.Result
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	// Half-open query window covering the inclusive date range.
	rangeEnd := endDate.AddDate(0, 0, 1)

	result := &domain.Result{
		Kind:        kind,
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		GeneratedAt: time.Now().UTC(),
	}

	switch kind {
	case domain.KindMeetingSummary:
		meetings, err := uc.repo.ListMeetingsBetween(ctx, startDate, rangeEnd)
		if err != nil {
			return nil, err
		}
		result.MeetingSummary = &domain.MeetingSummaryData{
			Summary: domain.SummarizeMeetings(meetings),
			Daily:   domain.DailyDistribution(meetings),
		}

	case domain.KindVisitorAnalytics:
		visits, err := uc.repo.ListVisitsBetween(ctx, startDate, rangeEnd)
		if err != nil {
			return nil, err
		}
		stats := domain.VisitorAnalytics(visits)
		result.VisitorAnalytics = &stats

	case domain.KindRoomUsage:
		meetings, err := uc.repo.ListMeetingsBetween(ctx, startDate, rangeEnd)
		if err != nil {
			return nil, err
		}
		result.RoomUsage = &domain.RoomUsageData{
			Rooms:     domain.RoomUsageFor(meetings),
			HourOfDay: domain.HourOfDayDistribution(meetings),
		}

	case domain.KindAttendance:
		visits, err := uc.repo.ListVisitsBetween(ctx, startDate, rangeEnd)
		if err != nil {
			return nil, err
		}
		stats := domain.AttendanceBreakdown(visits)
		result.Attendance = &stats
	}

	uc.cache.Set(ctx, key, result)
	return result, nil
}
