package meeting

import (
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// ===============================
// Meeting Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusRejected  Status = "REJECTED"
)

func InitialStatus() Status {
	return StatusPending
}

// transitions is the full state machine. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

// AllowedTransitions returns the legal next states for s. Terminal or unknown
// states yield nil.
func AllowedTransitions(s Status) []Status {
	return transitions[s]
}

// CanTransition reports whether from -> to is a legal status change.
// A same-status "transition" is never legal: callers must request an explicit
// change.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// Transition applies to onto the meeting after checking the state machine.
// On success it stamps the status-specific timestamp; recording the activity
// log entry is the caller's job.
func Transition(m *models.Meeting, to Status, now time.Time) error {
	from := Status(m.Status)
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to, Allowed: AllowedTransitions(from)}
	}

	m.Status = string(to)
	switch to {
	case StatusCancelled:
		m.CancelledAt = &now
	case StatusCompleted:
		m.CompletedAt = &now
	}
	return nil
}
