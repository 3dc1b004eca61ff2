package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
	"github.com/meetingdesk/meeting-scheduler/internal/notify"
)

type fakeReminderStore struct {
	due      []models.Meeting
	scanErr  error
	markErr  map[uint]error
	marked   []uint
	lastNow  time.Time
	lastSpan time.Duration
}

func (s *fakeReminderStore) ListDueReminders(
	_ context.Context,
	now time.Time,
	window time.Duration,
) ([]models.Meeting, error) {
	s.lastNow = now
	s.lastSpan = window
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.due, nil
}

func (s *fakeReminderStore) MarkReminderSent(_ context.Context, meetingID uint) error {
	if err := s.markErr[meetingID]; err != nil {
		return err
	}
	s.marked = append(s.marked, meetingID)
	return nil
}

type recordingSender struct {
	failFor map[uint]error
	sent    []notify.Event
}

func (s *recordingSender) Send(_ context.Context, ev notify.Event) error {
	if err := s.failFor[ev.MeetingID]; err != nil {
		return err
	}
	s.sent = append(s.sent, ev)
	return nil
}

func upcoming(id uint, start time.Time) models.Meeting {
	return models.Meeting{
		ID:        id,
		Title:     "Upcoming",
		Status:    "APPROVED",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func TestReminderJobSendsAndMarks(t *testing.T) {
	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{due: []models.Meeting{
		upcoming(1, now.Add(20*time.Minute)),
		upcoming(2, now.Add(40*time.Minute)),
	}}
	sender := &recordingSender{}

	job := NewReminderJob(store, sender, zap.NewNop(), time.Hour)
	job.now = func() time.Time { return now }

	job.Run(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, notify.EventReminder, sender.sent[0].Type)
	assert.Equal(t, []uint{1, 2}, store.marked)
	assert.Equal(t, time.Hour, store.lastSpan)
}

func TestReminderJobFailureDoesNotBlockBatch(t *testing.T) {
	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{due: []models.Meeting{
		upcoming(1, now.Add(10*time.Minute)),
		upcoming(2, now.Add(20*time.Minute)),
		upcoming(3, now.Add(30*time.Minute)),
	}}
	sender := &recordingSender{failFor: map[uint]error{2: errors.New("smtp down")}}

	job := NewReminderJob(store, sender, zap.NewNop(), time.Hour)
	job.now = func() time.Time { return now }

	job.Run(context.Background())

	// Meeting 2 stays unmarked and will be retried next run; 1 and 3 are done.
	assert.Equal(t, []uint{1, 3}, store.marked)
}

func TestReminderJobMarksOnlyAfterSend(t *testing.T) {
	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	store := &fakeReminderStore{
		due:     []models.Meeting{upcoming(1, now.Add(10 * time.Minute))},
		markErr: map[uint]error{1: errors.New("write failed")},
	}
	sender := &recordingSender{}

	job := NewReminderJob(store, sender, zap.NewNop(), time.Hour)
	job.now = func() time.Time { return now }

	job.Run(context.Background())

	// Send happened, flag write failed: nothing marked, next run retries.
	require.Len(t, sender.sent, 1)
	assert.Empty(t, store.marked)
}

func TestReminderJobScanFailure(t *testing.T) {
	store := &fakeReminderStore{scanErr: errors.New("db down")}
	sender := &recordingSender{}

	job := NewReminderJob(store, sender, zap.NewNop(), time.Hour)
	job.Run(context.Background())

	assert.Empty(t, sender.sent)
}

func TestReminderJobDefaultWindow(t *testing.T) {
	job := NewReminderJob(&fakeReminderStore{}, &recordingSender{}, zap.NewNop(), 0)
	assert.Equal(t, time.Hour, job.window)
}
