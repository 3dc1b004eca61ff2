package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusCompleted, StatusCancelled, StatusRejected}

	allowed := map[Status]map[Status]bool{
		StatusPending: {
			StatusApproved:  true,
			StatusRejected:  true,
			StatusCancelled: true,
		},
		StatusApproved: {
			StatusCompleted: true,
			StatusCancelled: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	// Re-requesting the current status is not a no-op, it is an error.
	for _, s := range []Status{StatusPending, StatusApproved, StatusCompleted, StatusCancelled, StatusRejected} {
		assert.False(t, CanTransition(s, s), "%s -> %s", s, s)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusApproved))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusRejected))
}

func TestTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	t.Run("cancel stamps cancelled_at", func(t *testing.T) {
		m := &models.Meeting{Status: string(StatusPending)}
		require.NoError(t, Transition(m, StatusCancelled, now))
		assert.Equal(t, string(StatusCancelled), m.Status)
		require.NotNil(t, m.CancelledAt)
		assert.Equal(t, now, *m.CancelledAt)
		assert.Nil(t, m.CompletedAt)
	})

	t.Run("complete stamps completed_at", func(t *testing.T) {
		m := &models.Meeting{Status: string(StatusApproved)}
		require.NoError(t, Transition(m, StatusCompleted, now))
		require.NotNil(t, m.CompletedAt)
		assert.Equal(t, now, *m.CompletedAt)
	})

	t.Run("approve stamps nothing", func(t *testing.T) {
		m := &models.Meeting{Status: string(StatusPending)}
		require.NoError(t, Transition(m, StatusApproved, now))
		assert.Nil(t, m.CancelledAt)
		assert.Nil(t, m.CompletedAt)
	})
}

func TestTransitionRejectsIllegalChange(t *testing.T) {
	now := time.Now()

	m := &models.Meeting{Status: string(StatusCompleted)}
	err := Transition(m, StatusCancelled, now)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StatusCompleted, te.From)
	assert.Equal(t, StatusCancelled, te.To)
	assert.Empty(t, te.Allowed)

	// The meeting is untouched on failure.
	assert.Equal(t, string(StatusCompleted), m.Status)
	assert.Nil(t, m.CancelledAt)
}

func TestTransitionErrorListsAllowed(t *testing.T) {
	m := &models.Meeting{Status: string(StatusPending)}
	err := Transition(m, StatusCompleted, time.Now())

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.ElementsMatch(t,
		[]Status{StatusApproved, StatusRejected, StatusCancelled},
		te.Allowed,
	)
}
