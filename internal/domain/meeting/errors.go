package meeting

import (
	"errors"
	"fmt"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// ErrInvalidInterval rejects drafts whose start is not strictly before the end.
var ErrInvalidInterval = errors.New("meeting: start time must be before end time")

// ConflictError reports that the requested room is already booked. It carries
// the conflicting meeting so clients can render an actionable message.
type ConflictError struct {
	Conflict *models.Meeting
}

func (e *ConflictError) Error() string {
	if e.Conflict == nil {
		return "meeting: room is not available for the requested interval"
	}
	return fmt.Sprintf(
		"meeting: room is not available, conflicts with meeting %d (%s - %s)",
		e.Conflict.ID,
		e.Conflict.StartTime.Format(time.RFC3339),
		e.Conflict.EndTime.Format(time.RFC3339),
	)
}

// TransitionError reports an illegal status change and lists the legal next
// states for the current status.
type TransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("meeting: illegal status transition %s -> %s (allowed: %v)", e.From, e.To, e.Allowed)
}

// DatastoreError marks an infrastructure failure (timeouts included) so
// callers can retry with backoff instead of treating it as a validation
// outcome.
type DatastoreError struct {
	Err error
}

func (e *DatastoreError) Error() string {
	return "meeting: datastore unavailable: " + e.Err.Error()
}

func (e *DatastoreError) Unwrap() error {
	return e.Err
}

func IsDatastoreError(err error) bool {
	var de *DatastoreError
	return errors.As(err, &de)
}
