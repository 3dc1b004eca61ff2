package meeting

import (
	"context"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/audit"
	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
	"github.com/meetingdesk/meeting-scheduler/internal/notify"
)

type TransitionStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	now    func() time.Time
}

func NewTransitionStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Dispatcher,
	now func() time.Time,
) *TransitionStatus {
	if now == nil {
		now = time.Now
	}
	return &TransitionStatus{
		repo:   repo,
		audit:  auditDispatcher,
		notify: notifier,
		now:    now,
	}
}

// Execute moves the meeting to the requested status through the transition
// guard. On success the change is persisted, an activity record appended, and
// a notification dispatched for cancellations.
func (uc *TransitionStatus) Execute(
	ctx context.Context,
	meetingID uint,
	newStatus domain.Status,
	userID uint,
) (*models.Meeting, error) {

	m, err := uc.repo.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, httperr.ErrBusiness("meeting_not_found")
	}

	oldStatus := m.Status
	if err := domain.Transition(m, newStatus, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveStatus(ctx, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &userID,
		Action:      "meeting_status_changed",
		MeetingID:   &m.ID,
		OldStatus:   oldStatus,
		NewStatus:   m.Status,
		Description: m.Title,
	})

	if newStatus == domain.StatusCancelled {
		uc.notify.Notify(notify.EventFor(m, notify.EventCancelled))
	}

	return m, nil
}
