package report

import (
	"context"
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// Repository is the read side used by report generation. Implementations
// preload Room on meetings and Visitor on visits.
type Repository interface {
	ListMeetingsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Meeting, error)

	ListVisitsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.VisitorVisit, error)
}
