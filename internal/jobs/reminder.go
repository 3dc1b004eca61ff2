package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
	"github.com/meetingdesk/meeting-scheduler/internal/notify"
)

// ReminderStore is the narrow persistence surface the reminder job needs.
type ReminderStore interface {
	// ListDueReminders returns approved meetings starting inside
	// (now, now+window] that have not been reminded yet.
	ListDueReminders(ctx context.Context, now time.Time, window time.Duration) ([]models.Meeting, error)

	MarkReminderSent(ctx context.Context, meetingID uint) error
}

// ReminderJob sends one reminder per upcoming meeting. The reminder_sent flag
// makes the job idempotent across overlapping or retried runs, and a failed
// send for one meeting never blocks the rest of the batch.
type ReminderJob struct {
	store  ReminderStore
	sender notify.Sender
	log    *zap.Logger
	window time.Duration
	now    func() time.Time
}

func NewReminderJob(
	store ReminderStore,
	sender notify.Sender,
	log *zap.Logger,
	window time.Duration,
) *ReminderJob {
	if window <= 0 {
		window = time.Hour
	}
	return &ReminderJob{
		store:  store,
		sender: sender,
		log:    log,
		window: window,
		now:    time.Now,
	}
}

func (j *ReminderJob) Run(ctx context.Context) {
	now := j.now()

	due, err := j.store.ListDueReminders(ctx, now, j.window)
	if err != nil {
		j.log.Error("reminder scan failed", zap.Error(err))
		return
	}

	var sent, failed int
	for i := range due {
		m := &due[i]

		ev := notify.EventFor(m, notify.EventReminder)
		if err := j.sender.Send(ctx, ev); err != nil {
			failed++
			j.log.Error("reminder send failed",
				zap.Uint("meeting_id", m.ID),
				zap.Error(err))
			continue
		}

		// The flag is set only after a successful send so a failed meeting is
		// retried on the next run.
		if err := j.store.MarkReminderSent(ctx, m.ID); err != nil {
			failed++
			j.log.Error("reminder flag update failed",
				zap.Uint("meeting_id", m.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	if sent > 0 || failed > 0 {
		j.log.Info("reminder batch finished",
			zap.Int("due", len(due)),
			zap.Int("sent", sent),
			zap.Int("failed", failed))
	}
}
