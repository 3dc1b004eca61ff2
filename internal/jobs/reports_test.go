package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/report"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type fakeReportStore struct {
	reports    []models.Report
	executions []*models.ReportExecution
}

func (s *fakeReportStore) ListScheduledReports(context.Context) ([]models.Report, error) {
	return s.reports, nil
}

func (s *fakeReportStore) CreateExecution(_ context.Context, ex *models.ReportExecution) error {
	s.executions = append(s.executions, ex)
	return nil
}

func (s *fakeReportStore) UpdateExecution(_ context.Context, ex *models.ReportExecution) error {
	for i, stored := range s.executions {
		if stored.ExecutionID == ex.ExecutionID {
			s.executions[i] = ex
		}
	}
	return nil
}

type fakeGenerator struct {
	err   error
	calls []domain.Kind
	spans [][2]time.Time
}

func (g *fakeGenerator) Execute(
	_ context.Context,
	kind domain.Kind,
	start, end time.Time,
) (*domain.Result, error) {
	g.calls = append(g.calls, kind)
	g.spans = append(g.spans, [2]time.Time{start, end})
	if g.err != nil {
		return nil, g.err
	}
	return &domain.Result{Kind: kind}, nil
}

type memLocker struct {
	held     map[string]bool
	acquired []string
	released []string
}

func newMemLocker() *memLocker {
	return &memLocker{held: make(map[string]bool)}
}

func (l *memLocker) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	l.acquired = append(l.acquired, key)
	return true, nil
}

func (l *memLocker) Release(_ context.Context, key string) error {
	delete(l.held, key)
	l.released = append(l.released, key)
	return nil
}

func scheduledReport(id uint, kind, freq string) models.Report {
	return models.Report{
		ID:                id,
		Title:             "Scheduled",
		ReportType:        kind,
		IsScheduled:       true,
		ScheduleFrequency: freq,
	}
}

func TestScheduledReportJobSuccess(t *testing.T) {
	store := &fakeReportStore{reports: []models.Report{
		scheduledReport(1, "MEETING_SUMMARY", "daily"),
	}}
	gen := &fakeGenerator{}
	locker := newMemLocker()

	job := NewScheduledReportJob(store, gen, locker, zap.NewNop())
	job.Run(context.Background())

	require.Len(t, store.executions, 1)
	ex := store.executions[0]
	assert.Equal(t, "COMPLETED", ex.Status)
	assert.NotEmpty(t, ex.ExecutionID)
	assert.NotEmpty(t, ex.Result)
	require.NotNil(t, ex.StartedAt)
	require.NotNil(t, ex.FinishedAt)

	// Lock taken and returned.
	assert.Equal(t, []string{"report:lock:1"}, locker.acquired)
	assert.Equal(t, []string{"report:lock:1"}, locker.released)
}

func TestScheduledReportJobRecordsFailure(t *testing.T) {
	store := &fakeReportStore{reports: []models.Report{
		scheduledReport(1, "MEETING_SUMMARY", "daily"),
	}}
	gen := &fakeGenerator{err: errors.New("datastore unavailable")}
	locker := newMemLocker()

	job := NewScheduledReportJob(store, gen, locker, zap.NewNop())
	job.Run(context.Background())

	require.Len(t, store.executions, 1)
	ex := store.executions[0]
	assert.Equal(t, "FAILED", ex.Status)
	assert.Contains(t, ex.ErrorMessage, "datastore unavailable")
	assert.Empty(t, ex.Result)

	// The lock is released even on failure.
	assert.Equal(t, []string{"report:lock:1"}, locker.released)
}

func TestScheduledReportJobSkipsWhenLockHeld(t *testing.T) {
	store := &fakeReportStore{reports: []models.Report{
		scheduledReport(1, "MEETING_SUMMARY", "daily"),
	}}
	gen := &fakeGenerator{}
	locker := newMemLocker()
	locker.held["report:lock:1"] = true

	job := NewScheduledReportJob(store, gen, locker, zap.NewNop())
	job.Run(context.Background())

	// No execution record, no generation: someone else is already on it.
	assert.Empty(t, store.executions)
	assert.Empty(t, gen.calls)
}

func TestScheduledReportJobOneFailureDoesNotBlockOthers(t *testing.T) {
	store := &fakeReportStore{reports: []models.Report{
		scheduledReport(1, "MEETING_SUMMARY", "daily"),
		scheduledReport(2, "ROOM_USAGE", "weekly"),
	}}
	locker := newMemLocker()
	locker.held["report:lock:1"] = true
	gen := &fakeGenerator{}

	job := NewScheduledReportJob(store, gen, locker, zap.NewNop())
	job.Run(context.Background())

	require.Len(t, gen.calls, 1)
	assert.Equal(t, domain.KindRoomUsage, gen.calls[0])
}

func TestScheduledReportJobWindows(t *testing.T) {
	now := time.Date(2024, time.June, 10, 6, 0, 0, 0, time.UTC)

	job := NewScheduledReportJob(&fakeReportStore{}, &fakeGenerator{}, newMemLocker(), zap.NewNop())
	job.now = func() time.Time { return now }

	t.Run("daily", func(t *testing.T) {
		r := scheduledReport(1, "MEETING_SUMMARY", "daily")
		start, end := job.window(&r)
		assert.Equal(t, now.AddDate(0, 0, -1), start)
		assert.Equal(t, now, end)
	})

	t.Run("weekly", func(t *testing.T) {
		r := scheduledReport(1, "MEETING_SUMMARY", "weekly")
		start, _ := job.window(&r)
		assert.Equal(t, now.AddDate(0, 0, -7), start)
	})

	t.Run("monthly", func(t *testing.T) {
		r := scheduledReport(1, "MEETING_SUMMARY", "monthly")
		start, _ := job.window(&r)
		assert.Equal(t, now.AddDate(0, -1, 0), start)
	})

	t.Run("fixed range fallback", func(t *testing.T) {
		r := scheduledReport(1, "MEETING_SUMMARY", "")
		r.StartDate = now.AddDate(0, 0, -3)
		r.EndDate = now.AddDate(0, 0, -2)
		start, end := job.window(&r)
		assert.Equal(t, r.StartDate, start)
		assert.Equal(t, r.EndDate, end)
	})
}
