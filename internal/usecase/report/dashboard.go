package report

import (
	"context"
	"time"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/reportcache"
)

// WidgetData is the payload a dashboard widget renders. Series holds the
// kind-specific rows.
type WidgetData struct {
	Kind        domain.WidgetKind `json:"kind"`
	Days        int               `json:"days"`
	GeneratedAt time.Time         `json:"generated_at"`
	Series      any               `json:"series"`
}

type Dashboard struct {
	repo  domain.Repository
	cache *reportcache.Cache
}

func NewDashboard(repo domain.Repository, cache *reportcache.Cache) *Dashboard {
	return &Dashboard{repo: repo, cache: cache}
}

// Widget computes one dashboard widget over the trailing window of days.
func (uc *Dashboard) Widget(
	ctx context.Context,
	kind domain.WidgetKind,
	days int,
) (*WidgetData, error) {

	if !kind.Valid() {
		return nil, httperr.ErrBusiness("invalid_widget_type")
	}
	if days <= 0 {
		days = 30
	}

	key := reportcache.WidgetKey(string(kind), days)
	var cached WidgetData
	if uc.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	data := &WidgetData{
		Kind:        kind,
		Days:        days,
		GeneratedAt: end.UTC(),
	}

	switch kind {
	case domain.WidgetMeetingTrend:
		meetings, err := uc.repo.ListMeetingsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data.Series = domain.DailyDistribution(meetings)

	case domain.WidgetMeetingStatus:
		meetings, err := uc.repo.ListMeetingsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data.Series = domain.SummarizeMeetings(meetings).ByStatus

	case domain.WidgetMeetingDuration:
		meetings, err := uc.repo.ListMeetingsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data.Series = domain.DurationHistogram(meetings)

	case domain.WidgetVisitorTrend:
		visits, err := uc.repo.ListVisitsBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		data.Series = domain.VisitDailyDistribution(visits)
	}

	uc.cache.Set(ctx, key, data)
	return data, nil
}
