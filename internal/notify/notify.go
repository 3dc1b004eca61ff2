package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// EventType names the moments the core decides to notify about. Delivery
// (mail, SMS, push) belongs to the Sender implementation.
type EventType string

const (
	EventCreated     EventType = "created"
	EventCancelled   EventType = "cancelled"
	EventRescheduled EventType = "rescheduled"
	EventReminder    EventType = "reminder"
)

type Event struct {
	Type      EventType
	MeetingID uint
	Title     string
	StartTime time.Time
	Location  string

	// Recipient is the visitor's address when one is attached to the meeting.
	Recipient string
}

type Sender interface {
	Send(ctx context.Context, ev Event) error
}

// LogSender is the default delivery backend: it records the event and does
// nothing else. Real transports plug in behind the same interface.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, ev Event) error {
	s.log.Info("notification",
		zap.String("type", string(ev.Type)),
		zap.Uint("meeting_id", ev.MeetingID),
		zap.String("title", ev.Title),
		zap.Time("start_time", ev.StartTime),
		zap.String("recipient", ev.Recipient),
	)
	return nil
}

// EventFor builds the notification payload for a meeting.
func EventFor(m *models.Meeting, t EventType) Event {
	ev := Event{
		Type:      t,
		MeetingID: m.ID,
		Title:     m.Title,
		StartTime: m.StartTime,
		Location:  m.ExternalLocation,
	}
	if m.Room != nil {
		ev.Location = m.Room.Name
	}
	if m.Visitor != nil {
		ev.Recipient = m.Visitor.Email
	}
	return ev
}

// Dispatcher sends lifecycle notifications off the request path. Reminder
// sends go through the Sender directly instead, because the reminder job must
// observe the send result before marking the meeting.
type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sender.Send(context.Background(), ev); err != nil {
			d.log.Error("notification send failed",
				zap.String("type", string(ev.Type)),
				zap.Uint("meeting_id", ev.MeetingID),
				zap.Error(err))
		}
	}
}

// Notify enqueues the event. A nil Dispatcher discards everything.
func (d *Dispatcher) Notify(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("type", string(ev.Type)),
			zap.Uint("meeting_id", ev.MeetingID))
	}
}
