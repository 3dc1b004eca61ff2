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

// ======================================================
// INPUT
// ======================================================

type CreateMeetingInput struct {
	Title string

	VisitorID *uint
	RoomID    *uint

	ExternalLocation string

	MeetingType string
	Priority    string

	StartTime time.Time
	EndTime   time.Time

	Description string
	Agenda      string

	CreatedByID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateMeeting struct {
	repo      domain.Repository
	validator *domain.Validator
	audit     *audit.Dispatcher
	notify    *notify.Dispatcher
}

func NewCreateMeeting(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CreateMeeting {
	return &CreateMeeting{
		repo:      repo,
		validator: domain.NewValidator(repo),
		audit:     auditDispatcher,
		notify:    notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateMeeting) Execute(
	ctx context.Context,
	in CreateMeetingInput,
) (*models.Meeting, error) {

	if in.RoomID != nil {
		room, err := uc.repo.GetRoom(ctx, *in.RoomID)
		if err != nil {
			return nil, httperr.ErrBusiness("room_not_found")
		}
		if !room.IsActive {
			return nil, httperr.ErrBusiness("room_inactive")
		}
	}

	var visitor *models.Visitor
	if in.VisitorID != nil {
		v, err := uc.repo.GetVisitor(ctx, *in.VisitorID)
		if err != nil {
			return nil, httperr.ErrBusiness("visitor_not_found")
		}
		if v.IsBlacklisted {
			return nil, httperr.ErrBusiness("visitor_blacklisted")
		}
		visitor = v
	}

	meetingType := domain.Type(in.MeetingType)
	if in.MeetingType == "" {
		meetingType = domain.TypeScheduled
	}
	if !meetingType.Valid() {
		return nil, httperr.ErrBusiness("invalid_meeting_type")
	}

	priority := domain.Priority(in.Priority)
	if in.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, httperr.ErrBusiness("invalid_priority")
	}

	m := &models.Meeting{
		Title:             in.Title,
		VisitorID:         in.VisitorID,
		Visitor:           visitor,
		RoomID:            in.RoomID,
		ExternalLocation:  in.ExternalLocation,
		MeetingType:       string(meetingType),
		Priority:          string(priority),
		Status:            string(domain.InitialStatus()),
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Description:       in.Description,
		Agenda:            in.Agenda,
		CreatedByID:       in.CreatedByID,
		RecurrencePattern: string(domain.FrequencyNone),
	}

	if err := uc.validator.ValidateAndPrepare(ctx, m); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateMeeting(ctx, m); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &in.CreatedByID,
		Action:      "meeting_created",
		MeetingID:   &m.ID,
		NewStatus:   m.Status,
		Description: m.Title,
	})

	uc.notify.Notify(notify.EventFor(m, notify.EventCreated))

	return m, nil
}
