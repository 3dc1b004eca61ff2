package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
)

// writeMeetingError maps domain failures onto the HTTP surface. Conflicts get
// 409 with the conflicting meeting attached, illegal transitions get 400 with
// the allowed next states, datastore failures get 503 so clients know to
// retry.
func writeMeetingError(c *gin.Context, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		var details any
		if conflict.Conflict != nil {
			details = gin.H{
				"conflicting_meeting_id": conflict.Conflict.ID,
				"start_time":             conflict.Conflict.StartTime,
				"end_time":               conflict.Conflict.EndTime,
			}
		}
		httperr.WriteDetails(c, 409, "room_unavailable", "Room is already booked for the requested interval.", details)
		return
	}

	var transition *domain.TransitionError
	if errors.As(err, &transition) {
		httperr.WriteDetails(c, 400, "invalid_status_transition",
			"Status change is not allowed from the current status.",
			gin.H{
				"from":    transition.From,
				"to":      transition.To,
				"allowed": transition.Allowed,
			})
		return
	}

	if errors.Is(err, domain.ErrInvalidInterval) {
		httperr.BadRequest(c, "invalid_interval", "Start time must be before end time.")
		return
	}

	if domain.IsDatastoreError(err) {
		httperr.ServiceUnavailable(c, "datastore_unavailable", "Datastore is temporarily unavailable.")
		return
	}

	var business httperr.BusinessError
	if errors.As(err, &business) {
		if strings.HasSuffix(business.Code, "_not_found") {
			httperr.NotFound(c, business.Code, "Resource not found.")
			return
		}
		httperr.BadRequest(c, business.Code, "Request rejected.")
		return
	}

	httperr.Internal(c, "internal_error", "Unexpected error.")
}
