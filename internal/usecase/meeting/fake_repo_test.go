package meeting

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/meetingdesk/meeting-scheduler/internal/domain/meeting"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// memRepo is an in-memory Repository honoring the same conflict contract as
// the gorm implementation: active meetings only, half-open overlap, one slot
// per room.
type memRepo struct {
	nextID   uint
	meetings map[uint]*models.Meeting
	rooms    map[uint]*models.MeetingRoom
	visitors map[uint]*models.Visitor
	rules    []*models.RecurringMeetingRule
}

func newMemRepo() *memRepo {
	return &memRepo{
		nextID:   1,
		meetings: make(map[uint]*models.Meeting),
		rooms:    make(map[uint]*models.MeetingRoom),
		visitors: make(map[uint]*models.Visitor),
	}
}

func (r *memRepo) addRoom(room models.MeetingRoom) *models.MeetingRoom {
	r.rooms[room.ID] = &room
	return &room
}

func (r *memRepo) addVisitor(v models.Visitor) *models.Visitor {
	r.visitors[v.ID] = &v
	return &v
}

func (r *memRepo) addMeeting(m models.Meeting) *models.Meeting {
	if m.ID == 0 {
		m.ID = r.nextID
	}
	if m.ID >= r.nextID {
		r.nextID = m.ID + 1
	}
	r.meetings[m.ID] = &m
	return &m
}

func (r *memRepo) GetRoom(_ context.Context, id uint) (*models.MeetingRoom, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (r *memRepo) GetVisitor(_ context.Context, id uint) (*models.Visitor, error) {
	v, ok := r.visitors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *memRepo) GetMeeting(_ context.Context, id uint) (*models.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memRepo) FindConflict(
	_ context.Context,
	roomID uint,
	iv domain.Interval,
	excludeMeetingID uint,
) (*models.Meeting, error) {

	for _, m := range r.meetings {
		if m.RoomID == nil || *m.RoomID != roomID || m.ID == excludeMeetingID {
			continue
		}
		if m.Status == "CANCELLED" || m.Status == "REJECTED" {
			continue
		}
		if iv.Overlaps(domain.Interval{Start: m.StartTime, End: m.EndTime}) {
			conflict := *m
			return &conflict, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateMeeting(ctx context.Context, m *models.Meeting) error {
	if m.RoomID != nil {
		iv := domain.Interval{Start: m.StartTime, End: m.EndTime}
		conflict, err := r.FindConflict(ctx, *m.RoomID, iv, m.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.ConflictError{Conflict: conflict}
		}
	}
	m.ID = r.nextID
	r.nextID++
	copied := *m
	r.meetings[m.ID] = &copied
	return nil
}

func (r *memRepo) UpdateMeeting(ctx context.Context, m *models.Meeting) error {
	if m.RoomID != nil {
		iv := domain.Interval{Start: m.StartTime, End: m.EndTime}
		conflict, err := r.FindConflict(ctx, *m.RoomID, iv, m.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return &domain.ConflictError{Conflict: conflict}
		}
	}
	copied := *m
	r.meetings[m.ID] = &copied
	return nil
}

func (r *memRepo) SaveStatus(_ context.Context, m *models.Meeting) error {
	stored, ok := r.meetings[m.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = m.Status
	stored.CancelledAt = m.CancelledAt
	stored.CompletedAt = m.CompletedAt
	return nil
}

func (r *memRepo) CreateRule(_ context.Context, rule *models.RecurringMeetingRule) error {
	rule.ID = uint(len(r.rules) + 1)
	r.rules = append(r.rules, rule)
	return nil
}

func (r *memRepo) ListMeetingsBetween(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Meeting, error) {

	var out []models.Meeting
	for _, m := range r.meetings {
		if !m.StartTime.Before(start) && m.StartTime.Before(end) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memRepo) ListMeetingsForRoom(
	ctx context.Context,
	roomID uint,
	start time.Time,
	end time.Time,
) ([]models.Meeting, error) {

	var out []models.Meeting
	for _, m := range r.meetings {
		if m.RoomID != nil && *m.RoomID == roomID {
			out = append(out, *m)
		}
	}
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)
