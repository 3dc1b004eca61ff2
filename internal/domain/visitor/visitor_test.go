package visitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

func TestCheckInCheckOutFlow(t *testing.T) {
	in := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(45 * time.Minute)

	v := &models.VisitorVisit{Status: string(VisitScheduled)}

	require.NoError(t, CheckIn(v, in))
	assert.Equal(t, string(VisitCheckedIn), v.Status)
	require.NotNil(t, v.CheckInTime)
	assert.Equal(t, in, *v.CheckInTime)

	require.NoError(t, CheckOut(v, out))
	assert.Equal(t, string(VisitCheckedOut), v.Status)
	require.NotNil(t, v.CheckOutTime)
	assert.Equal(t, out, *v.CheckOutTime)
}

func TestCheckInRejectsWrongState(t *testing.T) {
	now := time.Now()

	for _, status := range []VisitStatus{VisitCheckedIn, VisitCheckedOut, VisitCancelled} {
		v := &models.VisitorVisit{Status: string(status)}
		assert.Error(t, CheckIn(v, now), string(status))
	}
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	now := time.Now()

	for _, status := range []VisitStatus{VisitScheduled, VisitCheckedOut, VisitCancelled} {
		v := &models.VisitorVisit{Status: string(status)}
		assert.Error(t, CheckOut(v, now), string(status))
	}
}

func TestTypeValid(t *testing.T) {
	assert.True(t, TypeOnetime.Valid())
	assert.True(t, TypeRegular.Valid())
	assert.True(t, TypeVIP.Valid())
	assert.False(t, Type("WALKIN").Valid())
	assert.False(t, Type("").Valid())
}
