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

type RescheduleMeetingInput struct {
	MeetingID uint

	StartTime time.Time
	EndTime   time.Time

	// RoomID moves the meeting when set; ClearRoom moves it outside with
	// ExternalLocation as the destination.
	RoomID           *uint
	ClearRoom        bool
	ExternalLocation string

	UserID uint
}

type RescheduleMeeting struct {
	repo      domain.Repository
	validator *domain.Validator
	audit     *audit.Dispatcher
	notify    *notify.Dispatcher
}

func NewRescheduleMeeting(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *RescheduleMeeting {
	return &RescheduleMeeting{
		repo:      repo,
		validator: domain.NewValidator(repo),
		audit:     auditDispatcher,
		notify:    notifier,
	}
}

func (uc *RescheduleMeeting) Execute(
	ctx context.Context,
	in RescheduleMeetingInput,
) (*models.Meeting, error) {

	m, err := uc.repo.GetMeeting(ctx, in.MeetingID)
	if err != nil {
		return nil, httperr.ErrBusiness("meeting_not_found")
	}

	if domain.IsTerminal(domain.Status(m.Status)) {
		return nil, httperr.ErrBusiness("meeting_finalized")
	}

	m.StartTime = in.StartTime
	m.EndTime = in.EndTime

	switch {
	case in.ClearRoom:
		m.RoomID = nil
		m.Room = nil
		m.ExternalLocation = in.ExternalLocation
	case in.RoomID != nil:
		room, err := uc.repo.GetRoom(ctx, *in.RoomID)
		if err != nil {
			return nil, httperr.ErrBusiness("room_not_found")
		}
		if !room.IsActive {
			return nil, httperr.ErrBusiness("room_inactive")
		}
		m.RoomID = in.RoomID
		m.Room = room
		m.ExternalLocation = ""
	}

	// The validator excludes the meeting itself from the conflict scan via
	// its ID.
	if err := uc.validator.ValidateAndPrepare(ctx, m); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateMeeting(ctx, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &in.UserID,
		Action:      "meeting_rescheduled",
		MeetingID:   &m.ID,
		Description: m.Title,
		Metadata: map[string]any{
			"start_time": m.StartTime,
			"end_time":   m.EndTime,
		},
	})

	uc.notify.Notify(notify.EventFor(m, notify.EventRescheduled))

	return m, nil
}
