package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/httperr"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// activeStatusFilter keeps cancelled and rejected meetings out of every
// conflict comparison.
const activeStatusFilter = "status NOT IN ('CANCELLED', 'REJECTED')"

type MeetingGormRepository struct {
	db *gorm.DB
}

func NewMeetingGormRepository(db *gorm.DB) *MeetingGormRepository {
	return &MeetingGormRepository{db: db}
}

// --------------------------------------------------
// Rooms / visitors
// --------------------------------------------------

func (r *MeetingGormRepository) GetRoom(
	ctx context.Context,
	id uint,
) (*models.MeetingRoom, error) {

	var room models.MeetingRoom
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *MeetingGormRepository) GetVisitor(
	ctx context.Context,
	id uint,
) (*models.Visitor, error) {

	var visitor models.Visitor
	if err := r.db.WithContext(ctx).First(&visitor, id).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

// --------------------------------------------------
// Meetings
// --------------------------------------------------

func (r *MeetingGormRepository) GetMeeting(
	ctx context.Context,
	id uint,
) (*models.Meeting, error) {

	var m models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Visitor").
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingGormRepository) FindConflict(
	ctx context.Context,
	roomID uint,
	iv domain.Interval,
	excludeMeetingID uint,
) (*models.Meeting, error) {

	return findConflict(r.db.WithContext(ctx), roomID, iv, excludeMeetingID, false)
}

// findConflict runs the half-open overlap scan. With forUpdate the matching
// rows are locked for the duration of the surrounding transaction.
func findConflict(
	tx *gorm.DB,
	roomID uint,
	iv domain.Interval,
	excludeMeetingID uint,
	forUpdate bool,
) (*models.Meeting, error) {

	q := tx.
		Where(
			"room_id = ? AND "+activeStatusFilter+" AND start_time < ? AND end_time > ?",
			roomID,
			iv.End,
			iv.Start,
		).
		Order("start_time ASC")

	if excludeMeetingID != 0 {
		q = q.Where("id <> ?", excludeMeetingID)
	}
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var conflicts []models.Meeting
	if err := q.Limit(1).Find(&conflicts).Error; err != nil {
		return nil, &domain.DatastoreError{Err: err}
	}
	if len(conflicts) == 0 {
		return nil, nil
	}
	return &conflicts[0], nil
}

// CreateMeeting inserts the meeting with the conflict scan and the write in
// one transaction. The room exclusion constraint backs the scan up: if a
// concurrent writer slips between scan and insert, the constraint fires and
// is reported as the same *ConflictError.
func (r *MeetingGormRepository) CreateMeeting(
	ctx context.Context,
	m *models.Meeting,
) error {
	return r.writeChecked(ctx, m, func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
}

func (r *MeetingGormRepository) UpdateMeeting(
	ctx context.Context,
	m *models.Meeting,
) error {
	return r.writeChecked(ctx, m, func(tx *gorm.DB) error {
		return tx.Save(m).Error
	})
}

func (r *MeetingGormRepository) writeChecked(
	ctx context.Context,
	m *models.Meeting,
	write func(tx *gorm.DB) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.RoomID != nil {
			iv := domain.Interval{Start: m.StartTime, End: m.EndTime}
			conflict, err := findConflict(tx, *m.RoomID, iv, m.ID, true)
			if err != nil {
				return err
			}
			if conflict != nil {
				return &domain.ConflictError{Conflict: conflict}
			}
		}
		return write(tx)
	})

	return mapWriteError(err)
}

// mapWriteError translates driver-level race outcomes into domain errors: a
// fired exclusion constraint means a concurrent writer won the slot, a
// serialization failure is a retryable infrastructure condition.
func mapWriteError(err error) error {
	if httperr.IsExclusionConflict(err) {
		return &domain.ConflictError{}
	}
	if httperr.IsSerializationFailure(err) {
		return &domain.DatastoreError{Err: err}
	}
	return err
}

func (r *MeetingGormRepository) SaveStatus(
	ctx context.Context,
	m *models.Meeting,
) error {
	return r.db.WithContext(ctx).
		Model(m).
		Select("status", "cancelled_at", "completed_at", "updated_at").
		Updates(m).Error
}

// --------------------------------------------------
// Recurrence
// --------------------------------------------------

func (r *MeetingGormRepository) CreateRule(
	ctx context.Context,
	rule *models.RecurringMeetingRule,
) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *MeetingGormRepository) ListMeetingsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Meeting, error) {

	var meetings []models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Visitor").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingGormRepository) ListMeetingsForRoom(
	ctx context.Context,
	roomID uint,
	start time.Time,
	end time.Time,
) ([]models.Meeting, error) {

	var meetings []models.Meeting
	if err := r.db.WithContext(ctx).
		Where(
			"room_id = ? AND "+activeStatusFilter+" AND start_time < ? AND end_time > ?",
			roomID, end, start,
		).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *MeetingGormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) ([]models.Meeting, error) {

	var meetings []models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Visitor").
		Where(
			"status = 'APPROVED' AND reminder_sent = false AND start_time > ? AND start_time <= ?",
			now, now.Add(window),
		).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *MeetingGormRepository) MarkReminderSent(
	ctx context.Context,
	meetingID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("id = ?", meetingID).
		Update("reminder_sent", true).Error
}

// NotFound translates the driver's miss sentinel for handlers.
func NotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*MeetingGormRepository)(nil)
