package meeting

import (
	"context"
	"errors"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/audit"
	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type ExpandRecurringInput struct {
	MeetingID uint

	Frequency   string
	RepeatUntil time.Time
	DaysOfWeek  string

	UserID uint
}

// SkippedInstance records a generated slot dropped because the room was
// already taken.
type SkippedInstance struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	ConflictMeetingID *uint `json:"conflict_meeting_id,omitempty"`
}

// ExpandResult reports what the expansion materialized. Skipped instances do
// not fail the operation: the policy is skip-and-continue.
type ExpandResult struct {
	Rule    *models.RecurringMeetingRule `json:"rule"`
	Created []models.Meeting             `json:"created"`
	Skipped []SkippedInstance            `json:"skipped"`
}

// ======================================================
// USE CASE
// ======================================================

type ExpandRecurring struct {
	repo      domain.Repository
	validator *domain.Validator
	audit     *audit.Dispatcher
}

func NewExpandRecurring(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ExpandRecurring {
	return &ExpandRecurring{
		repo:      repo,
		validator: domain.NewValidator(repo),
		audit:     auditDispatcher,
	}
}

// Execute attaches a recurrence rule to the template meeting and materializes
// one child meeting per generated slot. The template keeps its own slot
// (candidate zero); children reference it through parent_meeting_id. Children
// of the same rule are created sequentially so their slots stay ordered and
// the conflict scan of one cannot race another.
func (uc *ExpandRecurring) Execute(
	ctx context.Context,
	in ExpandRecurringInput,
) (*ExpandResult, error) {

	template, err := uc.repo.GetMeeting(ctx, in.MeetingID)
	if err != nil {
		return nil, httperr.ErrBusiness("meeting_not_found")
	}

	weekdays, err := domain.ParseWeekdays(in.DaysOfWeek)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_days_of_week")
	}

	rule := domain.Rule{
		Frequency:   domain.Frequency(in.Frequency),
		RepeatUntil: in.RepeatUntil,
		Weekdays:    weekdays,
	}

	candidates, err := rule.Expand(domain.Interval{
		Start: template.StartTime,
		End:   template.EndTime,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFrequency) {
			return nil, httperr.ErrBusiness("invalid_frequency")
		}
		return nil, err
	}

	row := &models.RecurringMeetingRule{
		MeetingID:   template.ID,
		Frequency:   in.Frequency,
		RepeatUntil: in.RepeatUntil,
		DaysOfWeek:  in.DaysOfWeek,
		IsActive:    true,
	}
	if err := uc.repo.CreateRule(ctx, row); err != nil {
		return nil, err
	}

	result := &ExpandResult{Rule: row}

	// Candidate zero is the template's own slot, already persisted.
	for _, slot := range candidates[1:] {
		child := &models.Meeting{
			Title:             template.Title,
			VisitorID:         template.VisitorID,
			RoomID:            template.RoomID,
			ExternalLocation:  template.ExternalLocation,
			MeetingType:       template.MeetingType,
			Priority:          template.Priority,
			Status:            string(domain.InitialStatus()),
			StartTime:         slot.Start,
			EndTime:           slot.End,
			Description:       template.Description,
			Agenda:            template.Agenda,
			CreatedByID:       template.CreatedByID,
			ParentMeetingID:   &template.ID,
			RecurrencePattern: string(domain.FrequencyNone),
		}

		if err := uc.validator.ValidateAndPrepare(ctx, child); err != nil {
			if skipped, ok := asSkipped(err, slot); ok {
				result.Skipped = append(result.Skipped, skipped)
				continue
			}
			return nil, err
		}

		if err := uc.repo.CreateMeeting(ctx, child); err != nil {
			if skipped, ok := asSkipped(err, slot); ok {
				result.Skipped = append(result.Skipped, skipped)
				continue
			}
			return nil, err
		}

		result.Created = append(result.Created, *child)
	}

	template.IsRecurring = true
	template.RecurrencePattern = in.Frequency
	until := in.RepeatUntil
	template.RecurrenceEndDate = &until
	if err := uc.repo.UpdateMeeting(ctx, template); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &in.UserID,
		Action:      "meeting_recurrence_expanded",
		MeetingID:   &template.ID,
		Description: template.Title,
		Metadata: map[string]any{
			"frequency": in.Frequency,
			"created":   len(result.Created),
			"skipped":   len(result.Skipped),
		},
	})

	return result, nil
}

func asSkipped(err error, slot domain.Interval) (SkippedInstance, bool) {
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		return SkippedInstance{}, false
	}

	skipped := SkippedInstance{StartTime: slot.Start, EndTime: slot.End}
	if conflict.Conflict != nil {
		skipped.ConflictMeetingID = &conflict.Conflict.ID
	}
	return skipped, true
}
