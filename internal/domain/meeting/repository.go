package meeting

import (
	"context"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

type Repository interface {
	// -------- Rooms / visitors --------
	GetRoom(
		ctx context.Context,
		id uint,
	) (*models.MeetingRoom, error)

	GetVisitor(
		ctx context.Context,
		id uint,
	) (*models.Visitor, error)

	// -------- Meetings --------
	GetMeeting(
		ctx context.Context,
		id uint,
	) (*models.Meeting, error)

	// FindConflict returns the first active meeting in the room overlapping
	// the half-open interval, or nil. excludeMeetingID skips one meeting when
	// re-validating an edit (0 means no exclusion).
	FindConflict(
		ctx context.Context,
		roomID uint,
		iv Interval,
		excludeMeetingID uint,
	) (*models.Meeting, error)

	// CreateMeeting persists a new meeting. The implementation must make the
	// conflict-check-then-insert atomic (row locking plus the room exclusion
	// constraint) and return a *ConflictError when the slot is taken.
	CreateMeeting(
		ctx context.Context,
		m *models.Meeting,
	) error

	// UpdateMeeting persists interval or detail changes, re-checking the room
	// conflict with the meeting itself excluded. Same atomicity contract as
	// CreateMeeting.
	UpdateMeeting(
		ctx context.Context,
		m *models.Meeting,
	) error

	// SaveStatus persists a status change already approved by the transition
	// guard.
	SaveStatus(
		ctx context.Context,
		m *models.Meeting,
	) error

	// -------- Recurrence --------
	CreateRule(
		ctx context.Context,
		rule *models.RecurringMeetingRule,
	) error

	// -------- Listings --------
	ListMeetingsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Meeting, error)

	ListMeetingsForRoom(
		ctx context.Context,
		roomID uint,
		start time.Time,
		end time.Time,
	) ([]models.Meeting, error)
}
