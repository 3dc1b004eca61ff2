package meeting

import (
	"context"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// AvailabilityChecker answers whether a room is free for an interval. It is
// read-only and safe to call at any concurrency; consistency under concurrent
// writers is the repository's job, not this check's.
type AvailabilityChecker struct {
	repo Repository
}

func NewAvailabilityChecker(repo Repository) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo}
}

// IsAvailable reports whether the room is free for [iv.Start, iv.End). A nil
// roomID means an external meeting, which can never conflict on a room.
// excludeMeetingID (0 = none) drops one meeting from the comparison set when
// re-validating an edit. When the room is taken, the conflicting meeting is
// returned alongside false.
func (c *AvailabilityChecker) IsAvailable(
	ctx context.Context,
	roomID *uint,
	iv Interval,
	excludeMeetingID uint,
) (bool, *models.Meeting, error) {

	if roomID == nil {
		return true, nil, nil
	}

	conflict, err := c.repo.FindConflict(ctx, *roomID, iv, excludeMeetingID)
	if err != nil {
		return false, nil, err
	}

	return conflict == nil, conflict, nil
}
