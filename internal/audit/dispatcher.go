package audit

import "go.uber.org/zap"

type Event struct {
	UserID      *uint
	Action      string
	MeetingID   *uint
	OldStatus   string
	NewStatus   string
	Description string
	Metadata    any
}

// Dispatcher writes activity log entries off the request path. A full queue
// drops events rather than blocking the API.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.MeetingID,
			ev.OldStatus,
			ev.NewStatus,
			ev.Description,
			ev.Metadata,
		); err != nil {
			d.log.Error("activity log write failed", zap.Error(err))
		}
	}
}

// Dispatch enqueues the event. A nil Dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("activity log queue full, dropping event",
			zap.String("action", ev.Action))
	}
}
