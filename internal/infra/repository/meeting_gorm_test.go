package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
)

func TestMapWriteError(t *testing.T) {
	t.Run("exclusion constraint becomes conflict", func(t *testing.T) {
		err := mapWriteError(&pgconn.PgError{Code: "23P01"})

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Nil(t, conflict.Conflict)
	})

	t.Run("serialization failure becomes retryable datastore error", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "40001"}
		err := mapWriteError(cause)

		assert.True(t, domain.IsDatastoreError(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("connection reset")
		assert.Same(t, cause, mapWriteError(cause))

		assert.NoError(t, mapWriteError(nil))
	})

	t.Run("domain errors from the scan are untouched", func(t *testing.T) {
		scanHit := &domain.ConflictError{}
		assert.Same(t, error(scanHit), mapWriteError(scanHit))
	})
}
