package visitor

import (
	"time"

	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// ===============================
// Visitor types
// ===============================

type Type string

const (
	TypeOnetime Type = "ONETIME"
	TypeRegular Type = "REGULAR"
	TypeVIP     Type = "VIP"
)

func (t Type) Valid() bool {
	switch t {
	case TypeOnetime, TypeRegular, TypeVIP:
		return true
	}
	return false
}

// ===============================
// Visit status
// ===============================

type VisitStatus string

const (
	VisitScheduled  VisitStatus = "SCHEDULED"
	VisitCheckedIn  VisitStatus = "CHECKED_IN"
	VisitCheckedOut VisitStatus = "CHECKED_OUT"
	VisitCancelled  VisitStatus = "CANCELLED"
)

// CheckIn stamps the arrival on a scheduled visit.
func CheckIn(v *models.VisitorVisit, now time.Time) error {
	if VisitStatus(v.Status) != VisitScheduled {
		return httperr.ErrBusiness("invalid_visit_state")
	}
	v.Status = string(VisitCheckedIn)
	v.CheckInTime = &now
	return nil
}

// CheckOut stamps the departure on a checked-in visit.
func CheckOut(v *models.VisitorVisit, now time.Time) error {
	if VisitStatus(v.Status) != VisitCheckedIn {
		return httperr.ErrBusiness("invalid_visit_state")
	}
	v.Status = string(VisitCheckedOut)
	v.CheckOutTime = &now
	return nil
}
