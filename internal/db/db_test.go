package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Meeting start and end times are stored as timestamptz, and Postgres has no
// tsrange overload for that type. The constraint DDL must therefore build the
// interval with tstzrange or the install fails at startup.
func TestOverlapConstraintUsesTimestamptzRange(t *testing.T) {
	assert.Contains(t, overlapConstraintDDL, "tstzrange(start_time, end_time)")
	assert.NotContains(t, overlapConstraintDDL, "tsrange(start_time")

	t.Run("guards only active meetings with a room", func(t *testing.T) {
		assert.Contains(t, overlapConstraintDDL, "room_id IS NOT NULL")
		assert.Contains(t, overlapConstraintDDL, "status NOT IN ('CANCELLED', 'REJECTED')")
	})

	t.Run("install is idempotent", func(t *testing.T) {
		assert.Contains(t, overlapConstraintDDL, "pg_constraint")
		assert.Contains(t, overlapConstraintDDL, "meetings_room_no_overlap")
	})
}
