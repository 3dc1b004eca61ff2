package meeting

import (
	"context"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// Validator checks a meeting draft before persistence: interval
// well-formedness first, then room availability. It has no side effects
// beyond filling the default end time on the draft, so the recurrence
// expander can run it once per generated instance.
type Validator struct {
	checker *AvailabilityChecker
}

func NewValidator(repo Repository) *Validator {
	return &Validator{checker: NewAvailabilityChecker(repo)}
}

// ValidateAndPrepare returns nil when the draft may be persisted. A missing
// end time becomes start + DefaultDuration. Failure modes:
// ErrInvalidInterval, *ConflictError (with the conflicting meeting), or a
// *DatastoreError from the availability query.
func (v *Validator) ValidateAndPrepare(ctx context.Context, m *models.Meeting) error {
	iv := Interval{Start: m.StartTime, End: m.EndTime}.WithDefaultEnd()
	if !iv.Valid() {
		return ErrInvalidInterval
	}
	m.EndTime = iv.End

	ok, conflict, err := v.checker.IsAvailable(ctx, m.RoomID, iv, m.ID)
	if err != nil {
		return err
	}
	if !ok {
		return &ConflictError{Conflict: conflict}
	}

	return nil
}
